package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/tendant/simple-notify/pkg/notification"
)

// Sends one notification email through the same SMTP transport the service
// uses, so relay settings can be checked without running the service.
func main() {
	host := flag.String("host", "localhost", "SMTP server host")
	port := flag.Int("port", 1025, "SMTP server port")
	username := flag.String("user", "", "SMTP username")
	password := flag.String("pass", "", "SMTP password")
	useTLS := flag.Bool("tls", false, "Require TLS")
	from := flag.String("from", "", "From email address")
	to := flag.String("to", "", "To email address")
	flag.Parse()

	if *from == "" || *to == "" {
		log.Fatal("Error: from and to email addresses are required")
	}

	transport, err := notification.NewSMTPTransport(notification.SMTPConfig{
		Host:     *host,
		Port:     *port,
		TLS:      *useTLS,
		Username: *username,
		Password: *password,
		From:     *from,
	})
	if err != nil {
		log.Fatalf("Failed to create mail transport: %v", err)
	}

	email := notification.BuildEmail(*from, notification.Record{
		ID:        0,
		Recipient: *to,
		Topic:     "emailtest",
		Subject:   "Test Email from simple-notify",
		BodyText:  "This is a test email from the simple-notify email testing tool.",
		BodyHTML:  "<p>This is a test email from the <b>simple-notify</b> email testing tool.</p>",
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := transport.Send(ctx, email); err != nil {
		log.Fatalf("Failed to send email: %v", err)
	}

	fmt.Println("Email sent successfully!")
}
