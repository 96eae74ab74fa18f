package notifications

import (
	"bytes"
	"html/template"
)

const bookingConfirmationTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>Olá {{.Name}},</p>
  <p>Recebemos sua reserva. Ela aguarda confirmação da equipe.</p>
  <ul>
    <li>Serviço: {{.ServiceName}}</li>
    <li>Profissional: {{.ProfessionalName}}</li>
    <li>Data: {{.Date}}</li>
    <li>Horário: {{.Start}} - {{.End}}</li>
    <li>Código da reserva: {{.Reference}}</li>
  </ul>
  <p>Obrigado.</p>
</body>
</html>`

var bookingConfirmationTmpl = template.Must(
	template.New("booking_confirmation").Parse(bookingConfirmationTemplate),
)

type bookingConfirmationData struct {
	Name             string
	ServiceName      string
	ProfessionalName string
	Date             string
	Start            string
	End              string
	Reference        string
}

func buildBookingConfirmationHTML(ev BookingEvent) (string, error) {
	data := bookingConfirmationData{
		Name:             ev.Appointment.ClientName,
		ServiceName:      ev.Service.Name,
		ProfessionalName: ev.Professional.Name,
		Date:             ev.Appointment.StartTime.Format("2006-01-02"),
		Start:            ev.Appointment.StartTime.Format("15:04"),
		End:              ev.Appointment.EndTime.Format("15:04"),
		Reference:        ev.Appointment.Reference,
	}

	var buf bytes.Buffer
	if err := bookingConfirmationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
