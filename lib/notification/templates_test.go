package notification

import (
	"testing"

	"ats-backend/models"

	"github.com/stretchr/testify/require"
)

func TestStageTemplates(t *testing.T) {
	data := StageChangeData{
		CandidateName: "Jane Smith",
		JobTitle:      "Senior Engineer",
		CompanyName:   "Acme",
		FromStage:     "Screening",
		Reason:        "strong phone screen",
	}

	t.Run(`every stage renders`, func(t *testing.T) {
		stages := append([]models.PipelineStatus{}, models.OrderedStages...)
		stages = append(stages, models.ExitStages...)
		for _, stage := range stages {
			subject, body, err := StageChangedCandidateMsg(stage, data)
			require.Nil(t, err)
			require.NotEmpty(t, subject)
			require.Contains(t, body, "Jane Smith")

			subject, body, err = StageChangedRecruiterMsg(stage, data)
			require.Nil(t, err)
			require.NotEmpty(t, subject)
			require.Contains(t, body, "Jane Smith")
		}
	})

	t.Run(`stage specific copy differs`, func(t *testing.T) {
		_, phoneBody, err := StageChangedCandidateMsg(models.StagePhoneInterview, data)
		require.Nil(t, err)
		_, offerBody, err := StageChangedCandidateMsg(models.StageOfferSent, data)
		require.Nil(t, err)
		_, rejectBody, err := StageChangedCandidateMsg(models.StageRejected, data)
		require.Nil(t, err)
		require.NotEqual(t, phoneBody, offerBody)
		require.NotEqual(t, offerBody, rejectBody)
		require.Contains(t, offerBody, "offer")
		require.Contains(t, rejectBody, "not to move forward")
	})

	t.Run(`recruiter copy carries reason`, func(t *testing.T) {
		_, body, err := StageChangedRecruiterMsg(models.StageScreening, data)
		require.Nil(t, err)
		require.Contains(t, body, "strong phone screen")
	})
}

func TestInterviewTemplates(t *testing.T) {
	data := InterviewData{
		CandidateName: "Jane Smith",
		JobTitle:      "Senior Engineer",
		CompanyName:   "Acme",
		TypeName:      models.InterviewTypeTechnical.ToHuman(),
		Mode:          "online",
		Date:          "2026-09-10",
		TimeSlot:      "14:00",
		Interviewer:   "Bob Lee",
		JoinLink:      "https://meet.example.com/abc",
	}

	t.Run(`candidate message has prep tip and link`, func(t *testing.T) {
		subject, body, err := InterviewCandidateMsg(models.InterviewTypeTechnical, data)
		require.Nil(t, err)
		require.Contains(t, subject, "Technical interview")
		require.Contains(t, body, "meet.example.com")
		require.Contains(t, body, "past projects")
	})

	t.Run(`recruiter message has checklist`, func(t *testing.T) {
		_, body, err := InterviewRecruiterMsg(data)
		require.Nil(t, err)
		require.Contains(t, body, "Confirm interviewer availability")
		require.Contains(t, body, "Bob Lee")
	})
}

func TestOutbox(t *testing.T) {
	t.Run(`collects in order and skips empty recipients`, func(t *testing.T) {
		outbox := &Outbox{}
		outbox.AddEmail("jane@example.com", "s1", "b1")
		outbox.AddEmail("", "dropped", "dropped")
		outbox.AddPush("user-1", models.PushCodeStageChanged, "moved")
		outbox.AddPush("", models.PushCodeStageChanged, "dropped")

		msgs := outbox.Messages()
		require.Len(t, msgs, 2)
		require.Equal(t, ChannelEmail, msgs[0].Channel)
		require.Equal(t, "jane@example.com", msgs[0].ToEmail)
		require.Equal(t, ChannelPush, msgs[1].Channel)
		require.Equal(t, "user-1", msgs[1].ToUserID)
	})
}
