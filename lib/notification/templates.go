package notification

import (
	"bytes"
	"fmt"
	"html/template"

	"ats-backend/models"

	"github.com/pkg/errors"
)

// stageCopy is the candidate-facing wording for one destination stage.
// Stages without an entry fall back to the generic template.
type stageCopy struct {
	subject string
	body    string
}

var candidateStageCopy = map[models.PipelineStatus]stageCopy{
	models.StagePhoneInterview: {
		subject: "Next step for {{.JobTitle}}: phone interview",
		body: `<p>Hi {{.CandidateName}},</p>
<p>Good news: your application for <b>{{.JobTitle}}</b> at {{.CompanyName}} is moving to a phone interview. A recruiter will reach out shortly to agree on a time.</p>
<p>Tip: have your resume nearby and pick a quiet spot.</p>`,
	},
	models.StageTechnicalInterview: {
		subject: "Technical interview: {{.JobTitle}}",
		body: `<p>Hi {{.CandidateName}},</p>
<p>You have advanced to the technical interview round for <b>{{.JobTitle}}</b> at {{.CompanyName}}. Expect hands-on questions about your past work.</p>`,
	},
	models.StageOfferSent: {
		subject: "Your offer from {{.CompanyName}}",
		body: `<p>Hi {{.CandidateName}},</p>
<p>Congratulations! {{.CompanyName}} has sent you an offer for the <b>{{.JobTitle}}</b> position. Please review the details and respond at your convenience.</p>`,
	},
	models.StageHired: {
		subject: "Welcome aboard at {{.CompanyName}}",
		body: `<p>Hi {{.CandidateName}},</p>
<p>Welcome to {{.CompanyName}}! Your hiring for <b>{{.JobTitle}}</b> is confirmed. Onboarding details will follow.</p>`,
	},
	models.StageRejected: {
		subject: "Update on your application: {{.JobTitle}}",
		body: `<p>Hi {{.CandidateName}},</p>
<p>Thank you for your interest in the <b>{{.JobTitle}}</b> position at {{.CompanyName}}. After careful consideration we have decided not to move forward with your application at this time.</p>
<p>We will keep your profile on file for future openings.</p>`,
	},
	models.StageOnHold: {
		subject: "Your application is on hold: {{.JobTitle}}",
		body: `<p>Hi {{.CandidateName}},</p>
<p>Your application for <b>{{.JobTitle}}</b> at {{.CompanyName}} has been put on hold. We will get back to you as soon as the position resumes.</p>`,
	},
}

const candidateGenericBody = `<p>Hi {{.CandidateName}},</p>
<p>The status of your application for <b>{{.JobTitle}}</b> at {{.CompanyName}} changed to <b>{{.StageName}}</b>.</p>`

const recruiterStageBody = `<p>Candidate <b>{{.CandidateName}}</b> moved from {{.FromStage}} to <b>{{.StageName}}</b> on job <b>{{.JobTitle}}</b>.</p>
{{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}
<p>Open the pipeline board to review the next actions.</p>`

type StageChangeData struct {
	CandidateName string
	JobTitle      string
	CompanyName   string
	FromStage     string
	StageName     string
	Reason        string
}

func render(name, tplText string, data interface{}) (string, error) {
	tpl, err := template.New(name).Parse(tplText)
	if err != nil {
		return "", errors.Wrapf(err, "template %s parse failed", name)
	}
	buf := new(bytes.Buffer)
	if err = tpl.Execute(buf, data); err != nil {
		return "", errors.Wrapf(err, "template %s execute failed", name)
	}
	return buf.String(), nil
}

// StageChangedCandidateMsg builds the candidate email. The wording depends
// on the destination stage.
func StageChangedCandidateMsg(toStage models.PipelineStatus, data StageChangeData) (subject, body string, err error) {
	data.StageName = toStage.ToHuman()
	copyFor, ok := candidateStageCopy[toStage]
	if !ok {
		copyFor = stageCopy{
			subject: "Application update: {{.JobTitle}}",
			body:    candidateGenericBody,
		}
	}
	subject, err = render("candidate_subject", copyFor.subject, data)
	if err != nil {
		return "", "", err
	}
	body, err = render("candidate_body", copyFor.body, data)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

func StageChangedRecruiterMsg(toStage models.PipelineStatus, data StageChangeData) (subject, body string, err error) {
	data.StageName = toStage.ToHuman()
	subject = fmt.Sprintf("Pipeline update: %s -> %s", data.CandidateName, data.StageName)
	body, err = render("recruiter_stage_body", recruiterStageBody, data)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

type InterviewData struct {
	CandidateName string
	JobTitle      string
	CompanyName   string
	TypeName      string
	Mode          string
	Date          string
	TimeSlot      string
	Interviewer   string
	JoinLink      string
}

var interviewPrepTips = map[models.InterviewType]string{
	models.InterviewTypePhone:      "Keep your phone charged and be ready 5 minutes early.",
	models.InterviewTypeTechnical:  "Review the role requirements and be ready to discuss your past projects in depth.",
	models.InterviewTypeBehavioral: "Think of concrete examples: a conflict you resolved, a deadline you saved.",
	models.InterviewTypeFinal:      "This is the decision round: prepare your own questions about the team and role.",
	models.InterviewTypeHR:         "Expect questions about expectations, notice period and compensation.",
}

const interviewCandidateBody = `<p>Hi {{.CandidateName}},</p>
<p>Your <b>{{.TypeName}}</b> for the <b>{{.JobTitle}}</b> position at {{.CompanyName}} is scheduled for <b>{{.Date}} {{.TimeSlot}}</b> ({{.Mode}}).</p>
{{if .JoinLink}}<p>Join link: <a href="{{.JoinLink}}">{{.JoinLink}}</a></p>{{end}}
<p>{{.PrepTip}}</p>`

const interviewRecruiterBody = `<p>{{.TypeName}} scheduled: <b>{{.CandidateName}}</b> for <b>{{.JobTitle}}</b> on {{.Date}} {{.TimeSlot}} ({{.Mode}}), interviewer: {{.Interviewer}}.</p>
<ul>
<li>Confirm interviewer availability</li>
<li>Share the candidate profile with the panel</li>
<li>Record feedback right after the call</li>
</ul>`

func InterviewCandidateMsg(interviewType models.InterviewType, data InterviewData) (subject, body string, err error) {
	subject = fmt.Sprintf("%s scheduled: %s", data.TypeName, data.JobTitle)
	payload := struct {
		InterviewData
		PrepTip string
	}{InterviewData: data, PrepTip: interviewPrepTips[interviewType]}
	body, err = render("interview_candidate_body", interviewCandidateBody, payload)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

func InterviewRecruiterMsg(data InterviewData) (subject, body string, err error) {
	subject = fmt.Sprintf("Interview scheduled: %s / %s", data.CandidateName, data.JobTitle)
	body, err = render("interview_recruiter_body", interviewRecruiterBody, data)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

const newApplicationRecruiterBody = `<p>New application for <b>{{.JobTitle}}</b>: {{.CandidateName}} ({{.Email}}).</p>
<p>The candidate entered the pipeline at the first stage.</p>`

type NewApplicationData struct {
	CandidateName string
	JobTitle      string
	Email         string
}

func NewApplicationRecruiterMsg(data NewApplicationData) (subject, body string, err error) {
	subject = fmt.Sprintf("New application: %s", data.JobTitle)
	body, err = render("new_application_body", newApplicationRecruiterBody, data)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}
