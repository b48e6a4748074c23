package confirmation

import "fmt"

const dateLayout = "Jan 2, 2006"

// Message is a composed confirmation email.
type Message struct {
	Subject string
	HTML    string
}

// BuildOrderConfirmation maps resolved booking facts to the confirmation
// email. Pure; no IO.
func BuildOrderConfirmation(d Details) Message {
	s := d.StartDate.Format(dateLayout)
	e := d.EndDate.Format(dateLayout)

	subject := fmt.Sprintf("✅ Booking confirmed: %s (%s → %s)", d.StayName, s, e)

	html := fmt.Sprintf(`
<div style="font-family:'Segoe UI',Tahoma,Geneva,Verdana,sans-serif;line-height:1.6;color:#333;max-width:600px;margin:0 auto;background:#f7f9fb">
  <table cellpadding="0" cellspacing="0" border="0" width="100%%" style="background:#fff;border-radius:12px;overflow:hidden;box-shadow:0 6px 16px rgba(0,0,0,.08)">
    <tr>
      <td style="background:#FF385C;color:#fff;text-align:center;padding:28px 18px">
        <p style="font-size:28px;margin:0;font-weight:800">Sharebnb</p>
        <p style="margin:4px 0 0;opacity:.9">Booking Confirmation</p>
      </td>
    </tr>
    <tr>
      <td style="padding:28px 24px">
        <p style="margin:0 0 16px">Hi <strong>%s</strong>, you&rsquo;re booked!</p>
        <p style="margin:0 0 18px"><strong>%s</strong><br/><span style="color:#70757a">%s</span></p>
        <table width="100%%" cellpadding="12" style="background:#f6f7f9;border-radius:10px;margin:0 0 18px">
          <tr><td><strong>Check-in</strong>: %s</td></tr>
          <tr><td><strong>Check-out</strong>: %s</td></tr>
          <tr><td><strong>Total</strong>: $%.2f</td></tr>
        </table>
        <p style="margin:0 0 18px">
          <a href="%s" style="display:inline-block;padding:10px 14px;border-radius:10px;text-decoration:none;background:#111;color:#fff">Manage booking</a>
        </p>
        <p style="margin:18px 0 0;color:#555">We&rsquo;ve sent your host the details. See you soon ✨</p>
      </td>
    </tr>
    <tr>
      <td style="background:#f6f7f9;padding:16px;text-align:center;font-size:12px;color:#777">© Sharebnb</td>
    </tr>
  </table>
</div>`,
		d.GuestName, d.StayName, d.Address, s, e, d.TotalPrice, d.ManageURL)

	return Message{Subject: subject, HTML: html}
}
