package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/surya-tn99/lumi-your-voice-for-care/config"
	"github.com/surya-tn99/lumi-your-voice-for-care/internal/companion"
	"github.com/surya-tn99/lumi-your-voice-for-care/pkg/careclient"
	zaplog "github.com/surya-tn99/lumi-your-voice-for-care/pkg/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.LoadConfig()

	logger, err := zaplog.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	tokenStore, err := careclient.NewFileTokenStore(cfg.TokenFile)
	if err != nil {
		logger.Fatalf("Failed to set up token store: %v", err)
	}

	client := careclient.NewClient(cfg.APIBaseURL, tokenStore, logger)
	notifier := &terminalNotifier{inner: companion.NewLogNotifier(logger)}
	monitor := companion.NewEmergencyMonitor(client, notifier, logger)
	dashboard := companion.NewDashboard(client, notifier, logger)

	ctx := context.Background()

	token, err := tokenStore.Token()
	if err != nil {
		logger.Fatalf("Failed to read token: %v", err)
	}
	if token == "" {
		if err := signIn(ctx, client, tokenStore); err != nil {
			logger.Fatalf("Sign in failed: %v", err)
		}
	}

	if err := dashboard.Load(ctx); err != nil {
		logger.Warnf("Initial load failed: %v", err)
	}
	monitor.Refresh(ctx)

	// Periodic status check mirrors the web dashboard re-fetching
	// emergency state; server-driven escalations show up here.
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			monitor.Refresh(ctx)
		}
	}()

	render(dashboard, monitor)
	runLoop(ctx, client, tokenStore, dashboard, monitor)
}

func runLoop(ctx context.Context, client *careclient.Client, tokenStore *careclient.FileTokenStore, dashboard *companion.Dashboard, monitor *companion.EmergencyMonitor) {

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println(`Commands: status | take <n> | trigger | cancel | refresh | signout | quit`)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "status":
			render(dashboard, monitor)
		case "take":
			if len(fields) != 2 {
				fmt.Println("usage: take <number>")
				continue
			}
			meds := dashboard.Medications()
			index := 0
			if _, err := fmt.Sscanf(fields[1], "%d", &index); err != nil || index < 1 || index > len(meds) {
				fmt.Println("unknown medication number")
				continue
			}
			_ = dashboard.MarkTaken(ctx, meds[index-1].ID)
			render(dashboard, monitor)
		case "trigger":
			_ = monitor.Trigger(ctx)
			render(dashboard, monitor)
		case "cancel":
			_ = monitor.Cancel(ctx)
			render(dashboard, monitor)
		case "refresh":
			_ = dashboard.Load(ctx)
			monitor.Refresh(ctx)
			render(dashboard, monitor)
		case "signout":
			if err := tokenStore.Clear(); err != nil {
				fmt.Println("sign out failed:", err)
				continue
			}
			fmt.Println("Signed out.")
			return
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command")
		}
	}
}

// signIn walks the check-user / login / register onboarding flow.
func signIn(ctx context.Context, client *careclient.Client, tokenStore *careclient.FileTokenStore) error {

	reader := bufio.NewReader(os.Stdin)

	phone, err := prompt(reader, "Phone number: ")
	if err != nil {
		return err
	}

	exists, err := client.CheckUser(ctx, phone)
	if err != nil {
		return err
	}

	var token *careclient.TokenResponse
	if exists {
		otp, err := prompt(reader, "OTP: ")
		if err != nil {
			return err
		}
		token, err = client.Login(ctx, phone, otp)
		if err != nil {
			return err
		}
	} else {
		fmt.Println("No account for that number yet, let's set one up.")
		req := &careclient.RegisterRequest{Phone: phone}
		if req.Fullname, err = prompt(reader, "Full name: "); err != nil {
			return err
		}
		if req.DOB, err = prompt(reader, "Date of birth (YYYY-MM-DD): "); err != nil {
			return err
		}
		if req.BloodGroup, err = prompt(reader, "Blood group: "); err != nil {
			return err
		}
		if req.Address, err = prompt(reader, "Address: "); err != nil {
			return err
		}
		token, err = client.Register(ctx, req)
		if err != nil {
			return err
		}
	}

	if err := tokenStore.Save(token.AccessToken); err != nil {
		return err
	}

	fmt.Println("Signed in.")
	return nil
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func render(dashboard *companion.Dashboard, monitor *companion.EmergencyMonitor) {

	fmt.Println()
	fmt.Println("Today's Medications")
	meds := dashboard.Medications()
	if len(meds) == 0 {
		fmt.Println("  No medications for today.")
	}
	for i, med := range meds {
		line := fmt.Sprintf("  %d. %s %s at %s [%s]", i+1, med.Name, med.Dosage, med.ScheduledTime, med.Status)
		if med.TakenAt != "" {
			line += " taken at " + med.TakenAt
		}
		fmt.Println(line)
	}

	stats := dashboard.Stats()
	fmt.Printf("Daily Progress: %d taken, %d pending, %d missed (%d%% adherence)\n",
		stats.Taken, stats.Pending, stats.Missed, dashboard.Adherence())

	status := monitor.Status()
	if status.IsActive {
		fmt.Printf("Emergency Status: ACTIVE (%s) since %s\n", status.Stage, status.LastEmergencyTime)
	} else {
		fmt.Printf("Emergency Status: all clear (%s)\n", status.LastEmergencyTime)
	}

	nominees := dashboard.Nominees()
	fmt.Println("Your Family")
	if len(nominees) == 0 {
		fmt.Println("  No family members added.")
	}
	for _, contact := range nominees {
		fmt.Printf("  %s (%s) %s\n", contact.Name, contact.Relationship, contact.Phone)
	}
	fmt.Println()
}

type terminalNotifier struct {
	inner companion.Notifier
}

func (n *terminalNotifier) Success(message string) {
	fmt.Println("✔", message)
	n.inner.Success(message)
}

func (n *terminalNotifier) Failure(message string) {
	fmt.Println("✘", message)
	n.inner.Failure(message)
}
