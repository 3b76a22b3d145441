package email

import (
	"bytes"
	"html/template"
	"time"
)

// Body builders for the two mails the engine sends. Kept next to the sender
// so template changes and transport changes travel together.

type BookingConfirmationData struct {
	Title       string
	RoomName    string
	CreatorName string
	BookingID   string
	StartTime   time.Time
	EndTime     time.Time
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<div style="font-family: sans-serif; padding: 20px;">
	<h2>Booking confirmed</h2>
	<p>Hi {{.CreatorName}}, your booking is confirmed.</p>
	<ul>
		<li><strong>{{.Title}}</strong></li>
		<li>Room: {{.RoomName}}</li>
		<li>Date: {{.Date}}</li>
		<li>Time: {{.Start}} &ndash; {{.End}}</li>
	</ul>
	<p style="color: #666; font-size: 12px;">Booking reference: {{.BookingID}}</p>
</div>`))

var cancellationTmpl = template.Must(template.New("cancellation").Parse(`
<div style="font-family: sans-serif; padding: 20px;">
	<h2>Booking cancellation</h2>
	<p>You requested to cancel a booking.</p>
	<p>Your confirmation code is:</p>
	<h1 style="background: #f4f4f5; padding: 10px; display: inline-block; letter-spacing: 5px;">{{.Code}}</h1>
	<p>This code expires in 15 minutes.</p>
	<p style="color: #666; font-size: 12px;">If this was not you, ignore this email.</p>
</div>`))

func BookingConfirmationBody(data BookingConfirmationData) string {
	view := struct {
		Title       string
		RoomName    string
		CreatorName string
		BookingID   string
		Date        string
		Start       string
		End         string
	}{
		Title:       data.Title,
		RoomName:    data.RoomName,
		CreatorName: data.CreatorName,
		BookingID:   data.BookingID,
		Date:        data.StartTime.Format("Monday, 2 January 2006"),
		Start:       data.StartTime.Format("15:04"),
		End:         data.EndTime.Format("15:04"),
	}

	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, view); err != nil {
		return "<p>Your booking is confirmed.</p>"
	}
	return buf.String()
}

func CancellationCodeBody(code string) string {
	var buf bytes.Buffer
	if err := cancellationTmpl.Execute(&buf, struct{ Code string }{Code: code}); err != nil {
		return "<p>Your cancellation code: " + template.HTMLEscapeString(code) + "</p>"
	}
	return buf.String()
}
