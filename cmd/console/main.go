// Command console is the interactive menu over the three entity managers.
// It talks to the managers directly (no HTTP hop) and renders results and
// errors as plain text for a single operator.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hotel_registry/internal/adapters/observability"
	"hotel_registry/internal/app"
	"hotel_registry/internal/domain"
	"hotel_registry/internal/shared"
	"hotel_registry/internal/storage/jsonfile"
)

type console struct {
	in           *bufio.Reader
	hotels       *app.HotelService
	customers    *app.CustomerService
	reservations *app.ReservationService
}

func main() {
	cfg := shared.Load()
	// keep info noise out of the menu; store diagnostics still show
	log.Logger = observability.NewLogger("dev").Level(zerolog.WarnLevel)

	hotels := app.NewHotelService(jsonfile.New[domain.Hotel](cfg.DataDir, "hotels", log.Logger), nil, 0)
	customers := app.NewCustomerService(jsonfile.New[domain.Customer](cfg.DataDir, "customers", log.Logger), nil, 0)
	reservations := app.NewReservationService(jsonfile.New[domain.Reservation](cfg.DataDir, "reservations", log.Logger), hotels, customers, nil, 0)
	customers.BindReservationIndex(reservations)

	c := &console{in: bufio.NewReader(os.Stdin), hotels: hotels, customers: customers, reservations: reservations}
	c.mainMenu()
}

func (c *console) mainMenu() {
	for {
		fmt.Println("\n=== Hotel Reservation System ===")
		fmt.Println("1. Hotel Management")
		fmt.Println("2. Customer Management")
		fmt.Println("3. Reservation Management")
		fmt.Println("0. Exit")
		switch c.prompt("Select") {
		case "1":
			c.hotelMenu()
		case "2":
			c.customerMenu()
		case "3":
			c.reservationMenu()
		case "0":
			fmt.Println("Bye.")
			return
		default:
			fmt.Println("Invalid option. Please try again.")
		}
	}
}

// ---- hotels ----

func (c *console) hotelMenu() {
	ctx := context.Background()
	for {
		fmt.Println("\n--- Hotel Management ---")
		fmt.Println("1. Create Hotel")
		fmt.Println("2. Delete Hotel")
		fmt.Println("3. Display Hotel Information")
		fmt.Println("4. Modify Hotel Information")
		fmt.Println("5. Reserve a Room")
		fmt.Println("6. Cancel a Room Reservation")
		fmt.Println("0. Back")
		switch c.prompt("Select") {
		case "1":
			c.createHotel(ctx)
		case "2":
			if err := c.hotels.Delete(ctx, c.prompt("Hotel ID")); err != nil {
				fmt.Println("Error:", err)
			} else {
				fmt.Println("Hotel deleted.")
			}
		case "3":
			h, err := c.hotels.Get(ctx, c.prompt("Hotel ID"))
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Printf("Hotel ID   : %s\n", h.ID)
			fmt.Printf("Name       : %s\n", h.Name)
			fmt.Printf("Location   : %s\n", h.Location)
			fmt.Printf("Rating     : %.1f\n", h.Rating)
			fmt.Printf("Total Rooms: %d\n", h.TotalRooms)
			fmt.Printf("Available  : %d\n", h.AvailableRooms)
		case "4":
			c.modifyHotel(ctx)
		case "5":
			hotelID := c.prompt("Hotel ID")
			resID := c.prompt("Reservation ID")
			if err := c.hotels.ReserveRoom(ctx, hotelID, resID); err != nil {
				fmt.Println("Error:", err)
			} else {
				fmt.Println("Room reserved.")
			}
		case "6":
			hotelID := c.prompt("Hotel ID")
			resID := c.prompt("Reservation ID")
			if err := c.hotels.CancelReservation(ctx, hotelID, resID); err != nil {
				fmt.Println("Error:", err)
			} else {
				fmt.Println("Room released.")
			}
		case "0":
			return
		default:
			fmt.Println("Invalid option. Please try again.")
		}
	}
}

func (c *console) createHotel(ctx context.Context) {
	id := c.promptOrUUID("Hotel ID (blank = generate)")
	name := c.prompt("Name")
	location := c.prompt("Location")
	rating, err := strconv.ParseFloat(c.prompt("Rating (0.0-5.0)"), 64)
	if err != nil {
		fmt.Println("Error: rating must be a decimal number.")
		return
	}
	rooms, err := strconv.Atoi(c.prompt("Total Rooms"))
	if err != nil {
		fmt.Println("Error: total rooms must be an integer.")
		return
	}
	h, err := c.hotels.Create(ctx, id, name, location, rating, rooms)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Hotel %q created (ID: %s).\n", h.Name, h.ID)
}

func (c *console) modifyHotel(ctx context.Context) {
	id := c.prompt("Hotel ID")
	field := c.prompt("Field (name/location/rating/total_rooms)")
	value := c.prompt("New value")
	var upd domain.HotelUpdate
	switch field {
	case "name":
		upd.Name = &value
	case "location":
		upd.Location = &value
	case "rating":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			fmt.Println("Error: rating must be a decimal number.")
			return
		}
		upd.Rating = &f
	case "total_rooms":
		n, err := strconv.Atoi(value)
		if err != nil {
			fmt.Println("Error: total rooms must be an integer.")
			return
		}
		upd.TotalRooms = &n
	default:
		fmt.Printf("Warning: %q is not a modifiable field.\n", field)
		return
	}
	if _, err := c.hotels.Modify(ctx, id, upd); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Hotel %q updated.\n", id)
}

// ---- customers ----

func (c *console) customerMenu() {
	ctx := context.Background()
	for {
		fmt.Println("\n--- Customer Management ---")
		fmt.Println("1. Create Customer")
		fmt.Println("2. Delete Customer")
		fmt.Println("3. Display Customer Information")
		fmt.Println("4. Modify Customer Information")
		fmt.Println("0. Back")
		switch c.prompt("Select") {
		case "1":
			id := c.promptOrUUID("Customer ID (blank = generate)")
			name := c.prompt("Name")
			email := c.prompt("Email")
			phone := c.prompt("Phone")
			cust, err := c.customers.Create(ctx, id, name, email, phone)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Printf("Customer %q created (ID: %s).\n", cust.Name, cust.ID)
		case "2":
			if err := c.customers.Delete(ctx, c.prompt("Customer ID")); err != nil {
				fmt.Println("Error:", err)
			} else {
				fmt.Println("Customer deleted.")
			}
		case "3":
			cust, err := c.customers.Get(ctx, c.prompt("Customer ID"))
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Printf("Customer ID: %s\n", cust.ID)
			fmt.Printf("Name       : %s\n", cust.Name)
			fmt.Printf("Email      : %s\n", cust.Email)
			fmt.Printf("Phone      : %s\n", cust.Phone)
		case "4":
			c.modifyCustomer(ctx)
		case "0":
			return
		default:
			fmt.Println("Invalid option. Please try again.")
		}
	}
}

func (c *console) modifyCustomer(ctx context.Context) {
	id := c.prompt("Customer ID")
	field := c.prompt("Field (name/email/phone)")
	value := c.prompt("New value")
	var upd domain.CustomerUpdate
	switch field {
	case "name":
		upd.Name = &value
	case "email":
		upd.Email = &value
	case "phone":
		upd.Phone = &value
	default:
		fmt.Printf("Warning: %q is not a modifiable field.\n", field)
		return
	}
	if _, err := c.customers.Modify(ctx, id, upd); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Customer %q updated.\n", id)
}

// ---- reservations ----

func (c *console) reservationMenu() {
	ctx := context.Background()
	for {
		fmt.Println("\n--- Reservation Management ---")
		fmt.Println("1. Create Reservation")
		fmt.Println("2. Cancel Reservation")
		fmt.Println("3. Display Reservation Information")
		fmt.Println("0. Back")
		switch c.prompt("Select") {
		case "1":
			id := c.promptOrUUID("Reservation ID (blank = generate)")
			customerID := c.prompt("Customer ID")
			hotelID := c.prompt("Hotel ID")
			checkIn := c.prompt("Check-in (YYYY-MM-DD)")
			checkOut := c.prompt("Check-out (YYYY-MM-DD)")
			res, err := c.reservations.Create(ctx, id, customerID, hotelID, checkIn, checkOut)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Printf("Reservation %q created.\n", res.ID)
		case "2":
			res, err := c.reservations.Cancel(ctx, c.prompt("Reservation ID"))
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Printf("Reservation %q cancelled.\n", res.ID)
		case "3":
			res, err := c.reservations.Get(ctx, c.prompt("Reservation ID"))
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Printf("Reservation ID: %s\n", res.ID)
			fmt.Printf("Customer ID   : %s\n", res.CustomerID)
			fmt.Printf("Hotel ID      : %s\n", res.HotelID)
			fmt.Printf("Check-in      : %s\n", res.CheckIn)
			fmt.Printf("Check-out     : %s\n", res.CheckOut)
			fmt.Printf("Status        : %s\n", res.Status)
		case "0":
			return
		default:
			fmt.Println("Invalid option. Please try again.")
		}
	}
}

// ---- input helpers ----

func (c *console) prompt(label string) string {
	fmt.Printf("%s: ", label)
	line, err := c.in.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (c *console) promptOrUUID(label string) string {
	if v := c.prompt(label); v != "" {
		return v
	}
	id := uuid.NewString()
	fmt.Printf("Generated ID: %s\n", id)
	return id
}
