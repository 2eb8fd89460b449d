package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

var claimEmailTmpl = template.Must(template.New("claim_email").Funcs(template.FuncMap{
	"planName": planName,
}).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f7; margin: 0; padding: 24px;">
  <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h2 style="color: #23272a; margin-top: 0;">¡Bienvenido{{if .UserName}}, {{.UserName}}{{end}}!</h2>
    <p style="color: #44474a; line-height: 1.6;">
      Tu pago del plan <strong>{{planName .PlanID}}</strong> fue confirmado.
      Conecta tu cuenta de Discord para activar tu acceso a la comunidad.
    </p>
    <p style="text-align: center; margin: 32px 0;">
      <a href="{{.ClaimURL}}"
         style="background: #5865F2; color: #ffffff; text-decoration: none; padding: 14px 28px; border-radius: 6px; display: inline-block; font-weight: bold;">
        Conectar Discord
      </a>
    </p>
    <p style="color: #8a8f98; font-size: 13px; line-height: 1.5;">
      Este enlace es personal, de un solo uso y expira en {{.TTLHours}} horas.
      Si no realizaste esta compra, ignora este correo.
    </p>
  </div>
</body>
</html>`))

type claimEmailData struct {
	UserName string
	PlanID   string
	ClaimURL string
	TTLHours int
}

func renderClaimEmail(data claimEmailData) (string, error) {
	var buf bytes.Buffer
	if err := claimEmailTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render claim email: %w", err)
	}
	return buf.String(), nil
}

func renderClaimEmailText(data claimEmailData) string {
	var b strings.Builder
	if data.UserName != "" {
		fmt.Fprintf(&b, "Hola %s,\n\n", data.UserName)
	}
	fmt.Fprintf(&b, "Tu pago del plan %s fue confirmado.\n", planName(data.PlanID))
	fmt.Fprintf(&b, "Conecta tu cuenta de Discord aqui: %s\n\n", data.ClaimURL)
	fmt.Fprintf(&b, "El enlace es de un solo uso y expira en %d horas.\n", data.TTLHours)
	return b.String()
}

// planName turns a gateway plan id into something readable: "plan_mensual"
// becomes "Mensual".
func planName(planID string) string {
	name := strings.TrimPrefix(planID, "plan_")
	if name == "" {
		return planID
	}
	return strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
}
