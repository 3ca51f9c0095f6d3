package mailer

import "embed"

const (
	FromName             = "Hopskip"
	maxRetries           = 3
	CreditIssuedTemplate = "credit_issued.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
