package services

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/pfjetdev/pfgrouptravel/internal/database"
	"github.com/pfjetdev/pfgrouptravel/internal/models"
	"github.com/pfjetdev/pfgrouptravel/internal/utils"
	"github.com/pfjetdev/pfgrouptravel/pkg/notify"
)

// SubmissionMeta describes where a submission came from
type SubmissionMeta struct {
	ClientIP   string
	UserAgent  string
	RequestID  string
	ReceivedAt time.Time
}

// lead is one decoded intake payload
type lead interface {
	Validate() error
	contact() (email, phone string)
	record() database.Record
}

// announcer is implemented by leads that are relayed to operators
type announcer interface {
	summary(meta SubmissionMeta, loc *time.Location) notify.Message
}

type bookingLead struct {
	models.BookingRequest
}

func (l *bookingLead) contact() (string, string) { return l.Email, l.Phone }

func (l *bookingLead) record() database.Record {
	return database.Record{
		{Column: "trip_type", Value: string(l.TripType)},
		{Column: "from_airport", Value: l.FromAirport},
		{Column: "to_airport", Value: l.ToAirport},
		{Column: "departure_date", Value: l.DepartureDate},
		{Column: "return_date", Value: optDate(l.ReturnDate)},
		{Column: "passengers", Value: l.Passengers},
		{Column: "cabin_class", Value: string(l.CabinClass)},
		{Column: "full_name", Value: l.FullName},
		{Column: "phone", Value: l.Phone},
		{Column: "email", Value: l.Email},
	}
}

func (l *bookingLead) summary(meta SubmissionMeta, loc *time.Location) notify.Message {
	tripEmoji := "🗺️"
	switch l.TripType {
	case models.TripRoundTrip:
		tripEmoji = "🔄"
	case models.TripOneWay:
		tripEmoji = "➡️"
	}

	var b summaryBuilder
	b.header("🎫 <b>NEW BOOKING REQUEST</b> " + tripEmoji)
	b.section("👤 <b>Passenger Info:</b>")
	b.item("Name", l.FullName)
	b.item("Phone", l.Phone)
	b.item("Email", l.Email)
	b.section("✈️ <b>Flight Details:</b>")
	b.item("Type", string(l.TripType))
	b.item("From", l.FromAirport)
	b.item("To", l.ToAirport)
	b.item("Departure", l.DepartureDate.String())
	if l.ReturnDate != nil && !l.ReturnDate.IsZero() {
		b.item("Return", l.ReturnDate.String())
	}
	b.item("Passengers", fmt.Sprint(l.Passengers))
	b.item("Class", string(l.CabinClass))
	b.footer(meta, loc)

	return notify.Message{Subject: "New booking request: " + l.FullName, HTML: b.String()}
}

type multiCityLead struct {
	models.MultiCityRequest
}

func (l *multiCityLead) contact() (string, string) { return l.Email, l.Phone }

func (l *multiCityLead) record() database.Record {
	return database.Record{
		{Column: "flights", Value: l.Flights},
		{Column: "passengers", Value: l.Passengers},
		{Column: "cabin_class", Value: string(l.CabinClass)},
		{Column: "full_name", Value: l.FullName},
		{Column: "phone", Value: l.Phone},
		{Column: "email", Value: l.Email},
	}
}

func (l *multiCityLead) summary(meta SubmissionMeta, loc *time.Location) notify.Message {
	var b summaryBuilder
	b.header("🗺️ <b>NEW MULTI-CITY BOOKING</b>")
	b.section("👤 <b>Passenger Info:</b>")
	b.item("Name", l.FullName)
	b.item("Phone", l.Phone)
	b.item("Email", l.Email)
	b.section("✈️ <b>Flight Segments:</b>")
	for i, leg := range l.Flights {
		b.line(fmt.Sprintf("  %d. %s → %s (%s)", i+1, esc(leg.From), esc(leg.To), esc(leg.Date)))
	}
	b.section("👥 <b>Details:</b>")
	b.item("Passengers", fmt.Sprint(l.Passengers))
	b.item("Class", string(l.CabinClass))
	b.footer(meta, loc)

	return notify.Message{Subject: "New multi-city booking: " + l.FullName, HTML: b.String()}
}

type contactLead struct {
	models.ContactRequest
}

func (l *contactLead) contact() (string, string) { return l.Email, l.Phone }

func (l *contactLead) record() database.Record {
	return database.Record{
		{Column: "first_name", Value: l.FirstName},
		{Column: "last_name", Value: l.LastName},
		{Column: "email", Value: l.Email},
		{Column: "phone", Value: l.Phone},
		{Column: "inquiry_type", Value: l.InquiryType},
		{Column: "group_size", Value: optString(l.GroupSize)},
		{Column: "message", Value: l.Message},
	}
}

type enterpriseLead struct {
	models.EnterpriseInquiry
}

func (l *enterpriseLead) contact() (string, string) { return l.Email, l.Phone }

func (l *enterpriseLead) record() database.Record {
	return database.Record{
		{Column: "company_name", Value: l.CompanyName},
		{Column: "contact_name", Value: l.ContactName},
		{Column: "email", Value: l.Email},
		{Column: "phone", Value: l.Phone},
		{Column: "industry_type", Value: l.IndustryType},
		{Column: "annual_travel_budget", Value: optString(l.AnnualTravelBudget)},
		{Column: "number_of_employees", Value: optString(l.NumberOfEmployees)},
		{Column: "message", Value: l.Message},
	}
}

func (l *enterpriseLead) summary(meta SubmissionMeta, loc *time.Location) notify.Message {
	var b summaryBuilder
	b.header("🏢 <b>NEW ENTERPRISE INQUIRY</b> 💼")
	b.section("🏛️ <b>Company Info:</b>")
	b.item("Company", l.CompanyName)
	b.item("Contact", l.ContactName)
	b.item("Industry", l.IndustryType)
	if optString(l.NumberOfEmployees) != nil {
		b.item("Employees", *l.NumberOfEmployees)
	}
	if optString(l.AnnualTravelBudget) != nil {
		b.item("Budget", *l.AnnualTravelBudget)
	}
	b.section("📞 <b>Contact:</b>")
	b.item("Phone", l.Phone)
	b.item("Email", l.Email)
	b.section("💭 <b>Requirements:</b>")
	b.line(escText(l.Message, maxSummaryText))
	b.footer(meta, loc)

	return notify.Message{Subject: "New enterprise inquiry: " + l.CompanyName, HTML: b.String()}
}

type serviceLead struct {
	models.ServiceRequest
}

func (l *serviceLead) contact() (string, string) { return l.Email, l.Phone }

func (l *serviceLead) record() database.Record {
	return database.Record{
		{Column: "service_type", Value: string(l.ServiceType)},
		{Column: "destination", Value: optString(l.Destination)},
		{Column: "check_in_date", Value: optDate(l.CheckInDate)},
		{Column: "check_out_date", Value: optDate(l.CheckOutDate)},
		{Column: "guests", Value: optInt(l.Guests)},
		{Column: "pickup_location", Value: optString(l.PickupLocation)},
		{Column: "dropoff_location", Value: optString(l.DropoffLocation)},
		{Column: "transfer_date", Value: optDate(l.TransferDate)},
		{Column: "passengers", Value: optInt(l.Passengers)},
		{Column: "first_name", Value: l.FirstName},
		{Column: "last_name", Value: l.LastName},
		{Column: "email", Value: l.Email},
		{Column: "phone", Value: l.Phone},
	}
}

// optString, optDate and optInt map empty optional values to NULL
func optString(s *string) interface{} {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return *s
}

func optDate(d *models.CalendarDate) interface{} {
	if d == nil || d.IsZero() {
		return nil
	}
	return *d
}

func optInt(n *int) interface{} {
	if n == nil || *n == 0 {
		return nil
	}
	return *n
}

// maxSummaryText bounds free text in a chat summary so the whole message
// stays under the Telegram limit without cutting markup
const maxSummaryText = 3000

func esc(s string) string {
	return html.EscapeString(s)
}

// escText shortens s to limit runes before escaping
func escText(s string, limit int) string {
	if r := []rune(s); len(r) > limit {
		s = string(r[:limit]) + "…"
	}
	return esc(s)
}

// summaryBuilder assembles the chat message layout shared by all summaries
type summaryBuilder struct {
	lines []string
}

func (b *summaryBuilder) header(title string) {
	b.lines = append(b.lines, "<b>Group Travel</b>", "", title)
}

func (b *summaryBuilder) section(title string) {
	b.lines = append(b.lines, "", title)
}

func (b *summaryBuilder) item(label, value string) {
	b.lines = append(b.lines, "• "+label+": "+esc(value))
}

func (b *summaryBuilder) line(s string) {
	b.lines = append(b.lines, s)
}

func (b *summaryBuilder) footer(meta SubmissionMeta, loc *time.Location) {
	b.lines = append(b.lines, "")
	if meta.UserAgent != "" || meta.ClientIP != "" {
		device := utils.ParseUserAgent(meta.UserAgent).Summary()
		if meta.ClientIP != "" {
			device += " · " + meta.ClientIP
		}
		b.lines = append(b.lines, "📱 <i>"+esc(device)+"</i>")
	}
	received := meta.ReceivedAt
	if received.IsZero() {
		received = time.Now()
	}
	if loc != nil {
		received = received.In(loc)
	}
	b.lines = append(b.lines, "⏰ <i>Received at "+received.Format("1/2/2006, 3:04:05 PM MST")+"</i>")
}

func (b *summaryBuilder) String() string {
	return strings.Join(b.lines, "\n")
}
