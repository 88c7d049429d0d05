// Command carelink is a terminal client for the healthcare-booking backend:
// browse specialists, book appointments, leave feedback, and settle bills.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"carelink/client"
	"carelink/config"
	"carelink/controller"
	"carelink/models"
	"carelink/session"
	"carelink/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	store, err := buildSessionStore()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize session store: %v", err)
	}

	apiClient := client.New(config.AppConfig.APIBaseURL, store)
	apiClient.HTTPClient.Timeout = time.Duration(config.AppConfig.HTTPTimeoutSecs) * time.Second
	if perMin := config.AppConfig.MaxRequestsPerMin; perMin > 0 {
		apiClient.Limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), 5)
	}

	ui := &consoleUI{in: bufio.NewScanner(os.Stdin), out: os.Stdout}
	ctl := controller.New(apiClient, store, ui, buildLocator())
	if config.AppConfig.MaxDistanceKm > 0 {
		ctl.MaxDistance = config.AppConfig.MaxDistanceKm
	}

	ctx := context.Background()
	ctl.ShowAccount()
	ctl.RefreshFeedback(ctx)
	ctl.RefreshBilling(ctx)
	ctl.ShowSpecialists(ctx)

	runLoop(ctx, ctl, ui)
}

func buildSessionStore() (session.Store, error) {
	switch config.AppConfig.SessionBackend {
	case "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisSessionDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return session.NewRedisStore(rdb), nil
	default:
		return session.NewFileStore(config.AppConfig.SessionFile), nil
	}
}

func buildLocator() controller.Locator {
	lat, lng := config.AppConfig.LocationLat, config.AppConfig.LocationLng
	if lat == 0 && lng == 0 {
		return nil
	}
	return controller.FixedLocator{Point: models.GeoPoint{Lat: lat, Lng: lng}}
}

const helpText = `Commands:
  specialists          list all specialists
  near                 list specialists around your location
  city <name>          list specialists in a city
  book <id> [name]     book an appointment with a specialist
  appointments         show your appointments
  register             create an account
  login                sign in
  logout               sign out
  feedback             show feedback
  review               submit feedback
  billing              show billing summary and invoices
  pay <id>             pay an invoice
  help                 show this help
  quit                 exit`

func runLoop(ctx context.Context, ctl *controller.Controller, ui *consoleUI) {
	logger := utils.GetLogger()
	fmt.Fprintln(ui.out, helpText)

	for {
		fmt.Fprint(ui.out, "> ")
		if !ui.in.Scan() {
			return
		}
		line := strings.TrimSpace(ui.in.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return
		case "help":
			fmt.Fprintln(ui.out, helpText)
		case "specialists":
			ctl.ShowSpecialists(ctx)
		case "near":
			ctl.SearchByLocation(ctx)
		case "city":
			ctl.SearchByCity(ctx, strings.Join(args, " "))
		case "book":
			if len(args) == 0 {
				ui.Say("Usage: book <id> [name]")
				continue
			}
			name := "the specialist"
			if len(args) > 1 {
				name = strings.Join(args[1:], " ")
			}
			ctl.Book(ctx, args[0], name)
		case "appointments":
			ctl.ShowAppointments(ctx)
		case "register":
			name, ok := ui.Prompt("Full name")
			if !ok {
				continue
			}
			email, ok := ui.Prompt("Email")
			if !ok {
				continue
			}
			phone, ok := ui.Prompt("Phone")
			if !ok {
				continue
			}
			password, ok := ui.Prompt("Password")
			if !ok {
				continue
			}
			ctl.Register(ctx, name, email, phone, password)
		case "login":
			email, ok := ui.Prompt("Email")
			if !ok {
				continue
			}
			password, ok := ui.Prompt("Password")
			if !ok {
				continue
			}
			ctl.Login(ctx, email, password)
		case "logout":
			ctl.Logout()
		case "feedback":
			ctl.RefreshFeedback(ctx)
		case "review":
			ratingStr, ok := ui.Prompt("Rating (1-5)")
			if !ok {
				continue
			}
			rating, err := strconv.Atoi(strings.TrimSpace(ratingStr))
			if err != nil {
				ui.Say("Rating must be a number between 1 and 5")
				continue
			}
			serviceType, ok := ui.Prompt("Service type")
			if !ok {
				continue
			}
			text, ok := ui.Prompt("Your feedback")
			if !ok {
				continue
			}
			ctl.SetRating(rating)
			ctl.SubmitFeedback(ctx, serviceType, text)
		case "billing":
			ctl.RefreshBilling(ctx)
		case "pay":
			if len(args) != 1 {
				ui.Say("Usage: pay <id>")
				continue
			}
			ctl.PayInvoice(ctx, args[0])
		default:
			logger.Debug("unknown command", zap.String("command", cmd))
			ui.Say("Unknown command. Type help for a list.")
		}
	}
}
