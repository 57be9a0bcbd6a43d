package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/medbook/internal/client/api"
	"github.com/dmitrijs2005/medbook/internal/client/models"
	"github.com/dmitrijs2005/medbook/internal/client/routes"
)

const dateLayout = "2006-01-02 15:04"

// Open navigates to path and renders whatever page the guard allows.
func (a *App) Open(ctx context.Context, path string) error {
	res, err := a.nav.Go(path)
	if err != nil {
		a.toast(ctx, err, "Cannot open "+path)
		return err
	}
	if len(res.Redirects) > 0 || res.Fallback {
		a.printf("-> %s\n", res.Path)
	}
	return a.render(ctx, res)
}

func (a *App) render(ctx context.Context, res routes.Resolution) error {
	var (
		err      error
		fallback string
	)
	switch res.Route.Page {
	case routes.PageHome:
		a.renderHome()
	case routes.PageLogin:
		a.println("Sign in with 'login'. No account yet? Use 'register'.")
	case routes.PageRegister:
		a.println("Create an account with 'register'.")
	case routes.PageDoctors:
		err, fallback = a.renderDoctors(ctx), "Failed to load doctors"
	case routes.PageDoctorDetail:
		err, fallback = a.renderDoctor(ctx, res.Param("id")), "Failed to load doctor"
	case routes.PageDashboard:
		err, fallback = a.renderDashboard(ctx), "Failed to load dashboard"
	case routes.PageProfile:
		err, fallback = a.renderPatientProfile(ctx), "Failed to load profile"
	case routes.PageBookAppointment:
		err, fallback = a.renderBooking(ctx, res.Param("doctorId")), "Failed to book appointment"
	case routes.PageAppointments:
		err, fallback = a.renderAppointments(ctx), "Failed to load appointments"
	case routes.PageDoctorProfile:
		err, fallback = a.renderDoctorProfile(ctx), "Failed to load profile"
	case routes.PageChat:
		err, fallback = a.renderChat(ctx, res.Param("roomId")), "Failed to load chat"
	case routes.PageAdmin:
		err, fallback = a.renderAdmin(ctx), "Failed to load admin data"
	default:
		a.printf("Nothing to show for %s\n", res.Path)
	}
	if err != nil {
		a.toast(ctx, err, fallback)
	}
	return err
}

func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, raw)
	}
	return id, nil
}

func (a *App) renderHome() {
	a.println("MedBook: find a doctor and book an appointment.")
	a.println("Try 'open /doctors' to browse doctors.")
	if !a.isLoggedIn() {
		a.println("Log in with 'login' or create an account with 'register'.")
	}
}

func (a *App) renderDoctors(ctx context.Context) error {
	page, err := a.api.Doctors.List(ctx, api.DoctorParams{})
	if err != nil {
		return err
	}
	a.printf("Doctors (%d)\n", page.Count)
	rows := make([][]string, 0, len(page.Results))
	for _, d := range page.Results {
		avail := "no"
		if d.IsAvailable {
			avail = "yes"
		}
		rows = append(rows, []string{
			strconv.FormatInt(d.ID, 10),
			d.Name(),
			orDash(d.SpecializationDisplay),
			orDash(d.ConsultationFee),
			orDash(d.Rating),
			avail,
		})
	}
	table(a.out, []string{"ID", "NAME", "SPECIALIZATION", "FEE", "RATING", "AVAILABLE"}, rows)
	if page.HasNext() {
		a.println("(more doctors available)")
	}
	return nil
}

func (a *App) renderDoctor(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, "doctor")
	if err != nil {
		return err
	}
	d, err := a.api.Doctors.Get(ctx, id)
	if err != nil {
		return err
	}

	a.printf("%s\n", d.Name())
	a.printf("  specialization: %s\n", orDash(d.SpecializationDisplay))
	a.printf("  experience:     %d years\n", d.ExperienceYears)
	a.printf("  hospital:       %s\n", orDash(d.HospitalAffiliation))
	a.printf("  fee:            %s\n", orDash(d.ConsultationFee))
	a.printf("  hours:          %s - %s\n", orDash(d.AvailableFrom), orDash(d.AvailableTo))
	a.printf("  rating:         %s (%d reviews)\n", orDash(d.Rating), d.TotalReviews)
	if d.Bio != "" {
		a.printf("  %s\n", d.Bio)
	}

	reviews, err := a.api.Reviews.ForDoctor(ctx, id, api.ReviewParams{})
	if err != nil {
		return err
	}
	for _, r := range reviews.Results {
		a.printf("  * %d/5 %s: %s\n", r.Rating, orDash(r.PatientName), r.Comment)
	}
	if a.auth.State().Role() == models.RolePatient {
		a.printf("Book with 'open /book-appointment/%d'\n", id)
	}
	return nil
}

func (a *App) renderDashboard(ctx context.Context) error {
	st := a.auth.State()
	a.printf("Dashboard for %s\n", st.User.DisplayName())

	switch st.Role() {
	case models.RolePatient:
		page, err := a.api.Appointments.ForPatient(ctx, api.AppointmentParams{})
		if err != nil {
			return err
		}
		a.printAppointments(upcoming(page.Results))
	case models.RoleDoctor:
		page, err := a.api.Appointments.ForDoctor(ctx, api.AppointmentParams{Status: models.StatusPending})
		if err != nil {
			return err
		}
		a.println("Pending requests:")
		a.printAppointments(page.Results)
		stats, err := a.api.Appointments.Stats(ctx)
		if err != nil {
			return err
		}
		a.printStats("Appointments", stats)
	case models.RoleAdmin:
		return a.renderAdmin(ctx)
	}
	return nil
}

func upcoming(in []models.Appointment) []models.Appointment {
	out := make([]models.Appointment, 0, len(in))
	for _, ap := range in {
		if ap.IsUpcoming || ap.Status == models.StatusPending || ap.Status == models.StatusAccepted {
			out = append(out, ap)
		}
	}
	return out
}

func (a *App) renderAppointments(ctx context.Context) error {
	var (
		page *models.List[models.Appointment]
		err  error
	)
	if a.auth.State().Role() == models.RoleDoctor {
		page, err = a.api.Appointments.ForDoctor(ctx, api.AppointmentParams{})
	} else {
		page, err = a.api.Appointments.ForPatient(ctx, api.AppointmentParams{})
	}
	if err != nil {
		return err
	}
	a.printf("Appointments (%d)\n", page.Count)
	a.printAppointments(page.Results)
	return nil
}

func (a *App) printAppointments(aps []models.Appointment) {
	if len(aps) == 0 {
		a.println("No appointments")
		return
	}
	rows := make([][]string, 0, len(aps))
	for _, ap := range aps {
		rows = append(rows, []string{
			strconv.FormatInt(ap.ID, 10),
			ap.AppointmentDate.Local().Format(dateLayout),
			orDash(ap.DoctorName),
			orDash(ap.PatientName),
			string(ap.AppointmentType),
			string(ap.Status),
		})
	}
	table(a.out, []string{"ID", "DATE", "DOCTOR", "PATIENT", "TYPE", "STATUS"}, rows)
}

func (a *App) renderPatientProfile(ctx context.Context) error {
	p, err := a.api.Patients.Profile(ctx)
	if err != nil {
		return err
	}
	a.printf("Patient profile of %s\n", a.auth.State().User.DisplayName())
	a.printf("  gender:      %s\n", orDash(p.Gender))
	a.printf("  blood group: %s\n", orDash(p.BloodGroup))
	if p.BMI != nil {
		a.printf("  BMI:         %.1f\n", *p.BMI)
	}
	a.printf("  allergies:   %s\n", orDash(p.Allergies))
	a.printf("  medications: %s\n", orDash(p.CurrentMedications))
	a.printf("  emergency:   %s %s\n", orDash(p.EmergencyContactName), p.EmergencyContactPhone)
	return nil
}

func (a *App) renderDoctorProfile(ctx context.Context) error {
	d, err := a.api.Doctors.Profile(ctx)
	if err != nil {
		return err
	}
	a.printf("Doctor profile of %s\n", a.auth.State().User.DisplayName())
	a.printf("  license:        %s\n", orDash(d.LicenseNumber))
	a.printf("  specialization: %s\n", orDash(d.SpecializationDisplay))
	a.printf("  education:      %s\n", orDash(d.Education))
	a.printf("  languages:      %s\n", orDash(d.LanguagesSpoken))
	a.printf("  fee:            %s\n", orDash(d.ConsultationFee))
	return nil
}

// renderBooking shows the doctor and runs the booking form.
func (a *App) renderBooking(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, "doctor")
	if err != nil {
		return err
	}
	d, err := a.api.Doctors.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printf("Book an appointment with %s (%s)\n", d.Name(), orDash(d.SpecializationDisplay))

	rawDate, err := getSimpleText(a.reader, "Date and time ("+dateLayout+")", a.out)
	if err != nil {
		return err
	}
	when, err := time.ParseInLocation(dateLayout, rawDate, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q", rawDate)
	}
	kind, err := getSimpleText(a.reader, "Type: consultation, follow_up, checkup, emergency [consultation]", a.out)
	if err != nil {
		return err
	}
	if kind == "" {
		kind = string(models.TypeConsultation)
	}
	reason, err := getSimpleText(a.reader, "Reason for visit", a.out)
	if err != nil {
		return err
	}
	symptoms, err := GetMultiline(a.reader, "Symptoms (optional)", a.out)
	if err != nil {
		return err
	}

	ap, err := a.api.Appointments.Create(ctx, models.AppointmentRequest{
		Doctor:          id,
		AppointmentDate: when,
		AppointmentType: models.AppointmentType(kind),
		ReasonForVisit:  reason,
		Symptoms:        symptoms,
	})
	if err != nil {
		return err
	}
	a.printf("Appointment #%d requested for %s, status %s\n", ap.ID, when.Format(dateLayout), ap.Status)
	return nil
}

func (a *App) renderChat(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, "room")
	if err != nil {
		return err
	}
	room, err := a.api.Chat.Room(ctx, id)
	if err != nil {
		return err
	}
	msgs, err := a.api.Chat.Messages(ctx, id, api.ListParams{})
	if err != nil {
		return err
	}

	a.printf("Chat #%d: %s with %s\n", room.ID, orDash(room.PatientName), orDash(room.DoctorName))
	for _, m := range msgs.Results {
		a.printf("[%s] %s: %s\n", m.Timestamp.Local().Format(dateLayout), orDash(m.SenderName), m.Content)
	}
	if len(msgs.Results) == 0 {
		a.println("No messages yet")
	}
	if room.IsActive {
		a.printf("Reply with 'send %d'\n", room.ID)
	}

	if room.UnreadCount > 0 {
		if _, err := a.api.Chat.MarkRead(ctx, id); err != nil {
			a.log.Warn(ctx, "mark read failed", "room", id, "error", err)
		}
	}
	return nil
}

func (a *App) renderAdmin(ctx context.Context) error {
	users, err := a.api.Users.Stats(ctx)
	if err != nil {
		return err
	}
	a.printStats("Users", users)

	doctors, err := a.api.Doctors.Stats(ctx)
	if err != nil {
		return err
	}
	a.printStats("Doctors", doctors)

	patients, err := a.api.Patients.Stats(ctx)
	if err != nil {
		return err
	}
	a.printStats("Patients", patients)

	appointments, err := a.api.Appointments.Stats(ctx)
	if err != nil {
		return err
	}
	a.printStats("Appointments", appointments)

	recent, err := a.api.Users.List(ctx, api.UserParams{ListParams: api.ListParams{Ordering: "-date_joined", PageSize: 5}})
	if err != nil {
		return err
	}
	a.println("Recent users:")
	rows := make([][]string, 0, len(recent.Results))
	for _, u := range recent.Results {
		rows = append(rows, []string{strconv.FormatInt(u.ID, 10), u.Email, u.DisplayName(), string(u.Role)})
	}
	table(a.out, []string{"ID", "EMAIL", "NAME", "ROLE"}, rows)
	return nil
}

// printStats prints the scalar entries of a stats payload in key order.
func (a *App) printStats(title string, s models.Stats) {
	keys := make([]string, 0, len(s))
	for k, v := range s {
		switch v.(type) {
		case map[string]any, []any:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, s[k]))
	}
	a.printf("%s: %s\n", title, strings.Join(parts, " "))
}
