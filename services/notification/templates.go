package notification

import (
	"fmt"
	"time"

	"clinicbook/models"
)

// Message builders for the engine's outbound notifications. Each returns one
// message per channel the patient can be reached on.

func patientMessages(patient models.PatientRef, subject, body string, meta map[string]string) []models.NotificationMessage {
	var msgs []models.NotificationMessage
	if patient.Email != "" {
		msgs = append(msgs, models.NotificationMessage{
			Channel: models.ChannelEmail,
			Address: patient.Email,
			Subject: subject,
			Body:    body,
			Meta:    meta,
		})
	}
	if patient.Phone != "" {
		msgs = append(msgs, models.NotificationMessage{
			Channel: models.ChannelWhatsApp,
			Address: patient.Phone,
			Subject: subject,
			Body:    body,
			Meta:    meta,
		})
	}
	return msgs
}

// ConfirmationLinkMessages carries the one-time confirmation URL to the patient.
func ConfirmationLinkMessages(res *models.Reservation, url string, expires time.Time) []models.NotificationMessage {
	body := fmt.Sprintf(
		"Hello %s, please confirm your appointment on %s at %s: %s (link valid until %s).",
		res.Patient.Name, res.NextVisitDate, res.Time, url, expires.Format("Jan 2 15:04"),
	)
	return patientMessages(res.Patient, "Confirm your appointment", body, map[string]string{
		"reservationId": res.ID,
		"type":          "confirmation_link",
	})
}

// BookingReceivedMessages acknowledges a new reservation.
func BookingReceivedMessages(res *models.Reservation) []models.NotificationMessage {
	body := fmt.Sprintf(
		"Hello %s, your appointment on %s at %s has been registered. You will receive a confirmation link shortly.",
		res.Patient.Name, res.NextVisitDate, res.Time,
	)
	return patientMessages(res.Patient, "Appointment registered", body, map[string]string{
		"reservationId": res.ID,
		"type":          "booking_received",
	})
}

// DateReleasedMessages tells a patient their appointment date was released.
func DateReleasedMessages(res *models.Reservation, date string) []models.NotificationMessage {
	body := fmt.Sprintf(
		"Hello %s, your appointment on %s had to be cancelled by the practice. Please get in touch to rebook.",
		res.Patient.Name, date,
	)
	return patientMessages(res.Patient, "Appointment date released", body, map[string]string{
		"reservationId": res.ID,
		"type":          "date_released",
	})
}

// ProfessionalStatusMessage tells the professional about a patient action on a
// reservation (confirmed, cancelled, reschedule requested).
func ProfessionalStatusMessage(prof *models.Professional, res *models.Reservation, action string) []models.NotificationMessage {
	if prof == nil || prof.Email == "" {
		return nil
	}
	body := fmt.Sprintf(
		"Patient %s has %s the appointment on %s at %s.",
		res.Patient.Name, action, res.NextVisitDate, res.Time,
	)
	return []models.NotificationMessage{{
		Channel: models.ChannelEmail,
		Address: prof.Email,
		Subject: "Appointment update",
		Body:    body,
		Meta: map[string]string{
			"reservationId": res.ID,
			"type":          "status_change",
			"action":        action,
		},
	}}
}
