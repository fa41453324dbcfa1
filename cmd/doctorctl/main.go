// Command doctorctl registers a doctor from the terminal using the same form
// rules and collaborator endpoints as the admin web page.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"hospital-admin/config"
	"hospital-admin/internal/infrastructure/collaborator"
	"hospital-admin/internal/service"
	"hospital-admin/pkg/validator"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

func main() {
	envFile := flag.String("env", ".env", "Env file with the collaborator endpoints")
	verbose := flag.Bool("v", false, "Log collaborator calls")
	flag.Parse()

	cfg, err := config.LoadConfigFrom(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: failed to load config: %v", err)))
		os.Exit(1)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if *verbose {
		log.SetLevel(logrus.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(service.UserMessage(err)))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	fmt.Println(titleStyle.Render("Add Doctor"))
	fmt.Println(mutedStyle.Render("Add new doctor to your platform"))

	var a answers
	if err := newWizard(&a).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println(mutedStyle.Render("Cancelled."))
			return nil
		}
		return err
	}
	if !a.Confirm {
		fmt.Println(mutedStyle.Render("Cancelled."))
		return nil
	}

	httpClient := collaborator.NewHTTPClient(cfg.Collaborator.Timeout)
	form := service.NewDoctorForm(
		collaborator.NewUploadClient(cfg.Collaborator.UploadEndpoint, httpClient, log),
		collaborator.NewDoctorRecordClient(cfg.Collaborator.DoctorsEndpoint, httpClient, log),
		nil,
		validator.NewValidator(),
		log,
	)

	return submit(ctx, form, &a)
}

// submit fills the form from the answers, uploads the photo when one was
// given, then saves
func submit(ctx context.Context, form *service.DoctorForm, a *answers) error {
	for _, u := range a.updates() {
		if err := form.SetField(u.section, u.key, u.value); err != nil {
			return fmt.Errorf("%s.%s: %w", u.section, u.key, err)
		}
	}

	if a.PhotoPath != "" {
		file, err := loadPhoto(a.PhotoPath)
		if err != nil {
			return err
		}
		if err := form.HandleFileChange(file); err != nil {
			return err
		}
		url, err := form.HandleUpload(ctx)
		if err != nil {
			return err
		}
		fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top,
			successStyle.Render(service.MsgPhotoUploaded), " ", mutedStyle.Render(url)))
	}

	if err := form.HandleSave(ctx); err != nil {
		return err
	}
	fmt.Println(successStyle.Render(service.MsgDoctorAdded))
	return nil
}
