package pdfexport

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// OfferLetterData is everything the letter body template may reference.
type OfferLetterData struct {
	CompanyName   string
	CompanyEmail  string
	CandidateName string
	JobTitle      string
	Salary        int
	Benefits      string
	SentDate      string
}

const offerLetterTemplate = `<b>Offer of employment</b><br><br>` +
	`Dear {{.CandidateName}},<br><br>` +
	`{{.CompanyName}} is pleased to offer you the position of <b>{{.JobTitle}}</b>.<br><br>` +
	`Your annual base salary will be <b>{{.Salary}}</b>.` +
	`{{if .Benefits}}<br><br>In addition, the offer includes: {{.Benefits}}.{{end}}<br><br>` +
	`Please reply to this letter to confirm your acceptance. We look forward to working with you.<br><br>` +
	`Sincerely,<br>{{.CompanyName}}{{if .CompanyEmail}}<br>{{.CompanyEmail}}{{end}}`

func GenerateOfferLetter(tplData OfferLetterData) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateOfferLetter panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.AddUTF8Font("Arial", "I", "Arial Italic.ttf")
	pdf.AddUTF8Font("Arial", "BI", "Arial Bold Italic.ttf")
	pdf.SetFont("Arial", "", 14)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	_, lineHt := pdf.GetFontSize()
	header := fmt.Sprintf("%v<br>", tplData.CompanyName)
	if tplData.SentDate != "" {
		header += fmt.Sprintf("%v<br>", tplData.SentDate)
	}
	html := pdf.HTMLBasicNew()
	html.Write(lineHt, header)

	posY := pdf.GetY()
	if posY < 50 {
		posY = 50
		pdf.SetY(posY)
	}

	tpl, err := template.New("offer_body").Parse(offerLetterTemplate)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	err = tpl.Execute(buf, tplData)
	if err != nil {
		return nil, err
	}

	_, lineHt = pdf.GetFontSize()
	html = pdf.HTMLBasicNew()
	html.Write(lineHt, buf.String())

	buf = new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
