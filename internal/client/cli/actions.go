package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/medbook/internal/client/models"
)

// requireRole prints a notice and reports false unless the current user
// has role.
func (a *App) requireRole(role models.Role) bool {
	st := a.auth.State()
	if !st.IsAuthenticated {
		a.println("Not logged in")
		return false
	}
	if st.Role() != role {
		a.printf("Only a %s can do that\n", role)
		return false
	}
	return true
}

func (a *App) Accept(ctx context.Context, id int64) error {
	if !a.requireRole(models.RoleDoctor) {
		return nil
	}
	ap, err := a.api.Appointments.Accept(ctx, id)
	if err != nil {
		a.toast(ctx, err, "Failed to accept appointment")
		return err
	}
	a.printf("Appointment #%d is now %s\n", id, ap.Status)
	return nil
}

func (a *App) Reject(ctx context.Context, id int64) error {
	if !a.requireRole(models.RoleDoctor) {
		return nil
	}
	reason, err := getSimpleText(a.reader, "Reason for rejection", a.out)
	if err != nil {
		return err
	}
	ap, err := a.api.Appointments.Reject(ctx, id, models.Rejection{RejectionReason: reason})
	if err != nil {
		a.toast(ctx, err, "Failed to reject appointment")
		return err
	}
	a.printf("Appointment #%d is now %s\n", id, ap.Status)
	return nil
}

func (a *App) Complete(ctx context.Context, id int64) error {
	if !a.requireRole(models.RoleDoctor) {
		return nil
	}
	notes, err := GetMultiline(a.reader, "Notes", a.out)
	if err != nil {
		return err
	}
	prescription, err := GetMultiline(a.reader, "Prescription", a.out)
	if err != nil {
		return err
	}
	c := models.Completion{Notes: notes, Prescription: prescription}

	rawFollowUp, err := getSimpleText(a.reader, "Follow-up date ("+dateLayout+", optional)", a.out)
	if err != nil {
		return err
	}
	if rawFollowUp != "" {
		t, err := time.ParseInLocation(dateLayout, rawFollowUp, time.Local)
		if err != nil {
			a.notify("Invalid follow-up date")
			return err
		}
		c.FollowUpDate = &t
	}

	ap, err := a.api.Appointments.Complete(ctx, id, c)
	if err != nil {
		a.toast(ctx, err, "Failed to complete appointment")
		return err
	}
	a.printf("Appointment #%d is now %s\n", id, ap.Status)
	return nil
}

// Review rates a completed appointment.
func (a *App) Review(ctx context.Context, appointmentID int64) error {
	if !a.requireRole(models.RolePatient) {
		return nil
	}
	raw, err := getSimpleText(a.reader, "Rating (1-5)", a.out)
	if err != nil {
		return err
	}
	rating, err := strconv.Atoi(raw)
	if err != nil || rating < 1 || rating > 5 {
		a.notify("Rating must be a number from 1 to 5")
		return fmt.Errorf("invalid rating %q", raw)
	}
	comment, err := getSimpleText(a.reader, "Comment (optional)", a.out)
	if err != nil {
		return err
	}

	if _, err := a.api.Reviews.Create(ctx, models.ReviewRequest{Appointment: appointmentID, Rating: rating, Comment: comment}); err != nil {
		a.toast(ctx, err, "Failed to submit review")
		return err
	}
	a.println("Thank you for your review")
	return nil
}

// StartChat opens the chat room of an appointment and shows it.
func (a *App) StartChat(ctx context.Context, appointmentID int64) error {
	if !a.isLoggedIn() {
		a.println("Not logged in")
		return nil
	}
	room, err := a.api.Chat.CreateRoom(ctx, models.ChatRoomRequest{Appointment: appointmentID})
	if err != nil {
		a.toast(ctx, err, "Failed to open chat")
		return err
	}
	return a.Open(ctx, fmt.Sprintf("/chat/%d", room.ID))
}

func (a *App) Send(ctx context.Context, roomID int64) error {
	if !a.isLoggedIn() {
		a.println("Not logged in")
		return nil
	}
	text, err := GetMultiline(a.reader, "Message", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		a.println("Nothing sent")
		return nil
	}
	if _, err := a.api.Chat.SendMessage(ctx, roomID, models.ChatMessageRequest{Content: text}); err != nil {
		a.toast(ctx, err, "Failed to send message")
		return err
	}
	a.println("Sent")
	return nil
}
