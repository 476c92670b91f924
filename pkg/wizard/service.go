package wizard

import (
	"errors"

	"github.com/pfjetdev/pfgrouptravel/pkg/client"
)

// HotelDetails is step one of a hotel request
type HotelDetails struct {
	Destination string
	CheckIn     Date
	CheckOut    Date
	Guests      string
}

func (h HotelDetails) complete() bool {
	return present(h.Destination) && !h.CheckIn.IsZero() && !h.CheckOut.IsZero() && validCount(h.Guests)
}

// TransferDetails is step one of a transfer request
type TransferDetails struct {
	Pickup     string
	Dropoff    string
	Date       Date
	Passengers string
}

func (t TransferDetails) complete() bool {
	return present(t.Pickup) && present(t.Dropoff) && !t.Date.IsZero() && validCount(t.Passengers)
}

// ServiceWizard collects a hotel or transfer request
type ServiceWizard struct {
	flow
	service  ServiceType
	hotel    HotelDetails
	transfer TransferDetails
	contact  ContactInfo
}

// NewServiceWizard creates a service wizard on the hotel tab
func NewServiceWizard(submitter Submitter) *ServiceWizard {
	w := &ServiceWizard{}
	w.clear()
	w.init(submitter, w)
	return w
}

func (w *ServiceWizard) clear() {
	w.hotel = HotelDetails{}
	w.transfer = TransferDetails{}
	w.contact = ContactInfo{}
	w.service = ServiceHotel
}

// SelectService switches between hotel and transfer and returns to step one.
// Entered data of both variants is kept.
func (w *ServiceWizard) SelectService(s ServiceType) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitting {
		return
	}
	w.service = s
	w.step = StepDetails
}

// Service returns the selected variant
func (w *ServiceWizard) Service() ServiceType {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.service
}

func (w *ServiceWizard) detailsComplete() bool {
	switch w.service {
	case ServiceHotel:
		return w.hotel.complete()
	case ServiceTransfer:
		return w.transfer.complete()
	}
	return false
}

func (w *ServiceWizard) contactComplete() bool {
	return w.contact.splitComplete()
}

func (w *ServiceWizard) payload() (string, interface{}, error) {
	p := client.ServicePayload{
		ServiceType: string(w.service),
		FirstName:   w.contact.FirstName,
		LastName:    w.contact.LastName,
		Email:       w.contact.Email,
		Phone:       w.contact.Phone.String(),
	}

	switch w.service {
	case ServiceHotel:
		guests, err := parseCount("Guests", w.hotel.Guests)
		if err != nil {
			return "", nil, err
		}
		if !w.hotel.CheckIn.Before(w.hotel.CheckOut) {
			return "", nil, errors.New("Check-out must be after check-in")
		}
		p.Destination = client.StringOrNil(w.hotel.Destination)
		p.CheckInDate = w.hotel.CheckIn.ptr()
		p.CheckOutDate = w.hotel.CheckOut.ptr()
		p.Guests = countPtr(guests)
	case ServiceTransfer:
		passengers, err := parseCount("Passengers", w.transfer.Passengers)
		if err != nil {
			return "", nil, err
		}
		p.PickupLocation = client.StringOrNil(w.transfer.Pickup)
		p.DropoffLocation = client.StringOrNil(w.transfer.Dropoff)
		p.TransferDate = w.transfer.Date.ptr()
		p.Passengers = countPtr(passengers)
	}
	return client.EndpointServices, p, nil
}

// SetHotel replaces the hotel fields
func (w *ServiceWizard) SetHotel(h HotelDetails) { w.edit(func() { w.hotel = h }) }

// Hotel returns the hotel fields
func (w *ServiceWizard) Hotel() HotelDetails {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hotel
}

// SetTransfer replaces the transfer fields
func (w *ServiceWizard) SetTransfer(t TransferDetails) { w.edit(func() { w.transfer = t }) }

// Transfer returns the transfer fields
func (w *ServiceWizard) Transfer() TransferDetails {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.transfer
}

// SetContact replaces the contact details
func (w *ServiceWizard) SetContact(c ContactInfo) { w.edit(func() { w.contact = c }) }
