// Command quote submits a group flight request from the terminal through the
// same wizard flow the website uses.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pfjetdev/pfgrouptravel/pkg/client"
	"github.com/pfjetdev/pfgrouptravel/pkg/locations"
	"github.com/pfjetdev/pfgrouptravel/pkg/wizard"
)

type prompter struct {
	in *bufio.Scanner
}

func (p *prompter) ask(label string) string {
	fmt.Printf("%s: ", label)
	if !p.in.Scan() {
		os.Exit(1)
	}
	return strings.TrimSpace(p.in.Text())
}

func (p *prompter) askDefault(label, def string) string {
	if v := p.ask(fmt.Sprintf("%s [%s]", label, def)); v != "" {
		return v
	}
	return def
}

func (p *prompter) askDate(label string) wizard.Date {
	for {
		d, err := wizard.ParseDate(p.ask(label + " (YYYY-MM-DD)"))
		if err == nil {
			return d
		}
		fmt.Println("  invalid date")
	}
}

// askAirport narrows the directory with the typed query and lets the user
// pick one of the candidates by number
func (p *prompter) askAirport(dir *locations.Directory, label string) string {
	picker := locations.NewPicker(dir)
	for {
		picker.Open()
		picker.OnSearchChange(p.ask(label + " (search)"))
		candidates := picker.Candidates()
		if len(candidates) == 0 {
			fmt.Println("  no matching airports")
			continue
		}
		for i, e := range candidates {
			if i == 10 {
				fmt.Printf("  ... %d more, refine the search\n", len(candidates)-10)
				break
			}
			fmt.Printf("  %d) %s\n", i+1, locations.Format(e))
		}
		n, err := strconv.Atoi(p.ask("  choose"))
		if err != nil || n < 1 || n > len(candidates) || n > 10 {
			continue
		}
		if err := picker.OnSelect(candidates[n-1]); err != nil {
			fmt.Printf("  %v\n", err)
			continue
		}
		return picker.Value()
	}
}

func (p *prompter) askContact() wizard.ContactInfo {
	c := wizard.ContactInfo{FullName: p.ask("Full name")}
	for {
		phone, err := wizard.ParsePhone(p.ask("Phone (+1 555 123 4567)"))
		if err == nil {
			c.Phone = phone
			break
		}
		fmt.Printf("  %v\n", err)
	}
	c.Email = p.ask("Email")
	return c
}

type stepper interface {
	Next() error
	Submit(ctx context.Context) error
	Feedback() string
	SubmittedID() string
}

func finish(w stepper) {
	if err := w.Next(); err != nil {
		log.Fatalf("Request details incomplete: %v", err)
	}
}

func submit(w stepper, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := w.Submit(ctx); err != nil {
		if errors.Is(err, wizard.ErrIncomplete) {
			log.Fatal("Contact details incomplete")
		}
		log.Fatalf("%s", w.Feedback())
	}
	fmt.Printf("Request received. Reference: %s\n", w.SubmittedID())
}

func main() {
	baseURL := flag.String("api", envOr("PFGT_API_URL", client.DefaultBaseURL), "intake server origin")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	api := client.New(client.Config{BaseURL: *baseURL, Timeout: *timeout})
	dir := locations.Default()
	p := &prompter{in: bufio.NewScanner(os.Stdin)}

	fw := wizard.NewFlightWizard(api, dir)
	trip := wizard.TripType(p.askDefault("Trip type (roundTrip, oneWay, multiCity)", string(wizard.TripRoundTrip)))

	fw.SetFrom(p.askAirport(dir, "From"))
	fw.SetTo(p.askAirport(dir, "To"))
	fw.SetDepartDate(p.askDate("Departure date"))
	fw.SetPassengers(p.ask("Passengers"))
	fw.SetCabinClass(wizard.CabinClass(p.askDefault("Cabin (economy, business, first)", string(wizard.CabinEconomy))))

	if trip == wizard.TripMultiCity {
		prefill := fw.SetTripType(trip)
		if prefill == nil {
			log.Fatal("Route, date and passengers are required before adding more flights")
		}
		runMultiCity(p, api, dir, prefill, *timeout)
		return
	}

	fw.SetTripType(trip)
	if trip == wizard.TripRoundTrip {
		fw.SetReturnDate(p.askDate("Return date"))
	}
	finish(fw)
	fw.SetContact(p.askContact())
	submit(fw, *timeout)
}

func runMultiCity(p *prompter, api *client.Client, dir *locations.Directory, prefill *wizard.MultiCityPrefill, timeout time.Duration) {
	mw := wizard.NewMultiCityWizard(api, prefill)
	for i := 1; ; i++ {
		segments := mw.Segments()
		if i >= len(segments) {
			if len(segments) >= wizard.MaxSegments || strings.ToLower(p.askDefault("Add another flight? (y/n)", "n")) != "y" {
				break
			}
			if _, err := mw.AddSegment(); err != nil {
				fmt.Printf("  %v\n", err)
				break
			}
			segments = mw.Segments()
		}

		fmt.Printf("Flight %d departs from %s\n", i+1, segments[i].Origin)
		if err := mw.SetDestination(i, p.askAirport(dir, "To")); err != nil {
			log.Fatal(err)
		}
		if err := mw.SetDate(i, p.askDate("Date")); err != nil {
			log.Fatal(err)
		}
	}

	finish(mw)
	mw.SetContact(p.askContact())
	submit(mw, timeout)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
