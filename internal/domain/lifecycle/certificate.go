package lifecycle

import (
	"bytes"
	"text/template"
	"time"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/animals"
)

const certificateContentType = "text/plain; charset=utf-8"

var certificateTmpl = template.Must(template.New("certificate").Parse(`CERTIFICADO DE ADOPCIÓN
=======================

Adopción:   {{.Adoption.ID}}
Pedido:     {{.Adoption.RequestID}}
Adoptante:  {{.Adoption.ApplicantID}}

Animal:     {{.Animal.Name}} ({{.Animal.Species}}{{if .Animal.Breed}}, {{.Animal.Breed}}{{end}})
Animal ID:  {{.Animal.ID}}
{{- if .ContractRef}}
Contrato:   {{.ContractRef}}
{{- end}}
{{- if .FollowUp}}
Seguimiento programado: {{.FollowUp}}
{{- end}}

Aprobado por {{.ReviewedBy}} el {{.IssuedAt}}.
`))

type certificateData struct {
	Adoption    adoptions.Adoption
	Animal      animals.Animal
	ContractRef string
	FollowUp    string
	ReviewedBy  string
	IssuedAt    string
}

func renderCertificate(a adoptions.Adoption, animal animals.Animal, in DecideInput, reviewer string, at time.Time) ([]byte, error) {
	data := certificateData{
		Adoption:    a,
		Animal:      animal,
		ContractRef: in.ContractRef,
		ReviewedBy:  reviewer,
		IssuedAt:    at.Format("2006-01-02 15:04 MST"),
	}
	if in.FollowUpDate != nil {
		data.FollowUp = in.FollowUpDate.Format("2006-01-02")
	}

	var buf bytes.Buffer
	if err := certificateTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func certificateKey(adoptionID string) string {
	return "certificates/" + adoptionID + ".txt"
}
