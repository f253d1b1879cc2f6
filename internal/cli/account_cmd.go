package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/focuspro/internal/cli/formatter"
	"github.com/alexanderramin/focuspro/internal/domain"
	"github.com/alexanderramin/focuspro/internal/i18n"
	"github.com/alexanderramin/focuspro/internal/tracker"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var u domain.UserIdentity
	var staffID, lang string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the staff identity used for time tracking",
		Long: "Store the staff identity used for time tracking.\n\n" +
			"Without --email and --staff-id an interactive form is shown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			u.StaffID = domain.StaffID(strings.TrimSpace(staffID))
			u.Email = strings.TrimSpace(u.Email)

			if !u.Valid() {
				if !app.interactive() {
					return errors.New("--email and --staff-id are required when not running in a terminal")
				}
				if err := loginForm(&u, &staffID, &lang).Run(); err != nil {
					return err
				}
				u.StaffID = domain.StaffID(strings.TrimSpace(staffID))
				u.Email = strings.TrimSpace(u.Email)
			}

			if err := app.Identity.Login(cmd.Context(), &u, lang); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Toast(tracker.NoticeSuccess, "Logged in as "+u.FullName()+" <"+u.Email+">"))
			return nil
		},
	}

	cmd.Flags().StringVar(&u.Email, "email", "", "Staff email address")
	cmd.Flags().StringVar(&staffID, "staff-id", "", "Staff id")
	cmd.Flags().StringVar(&u.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&u.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&lang, "lang", domain.LangEnglish, "Interface language (en or tr)")

	return cmd
}

// loginForm collects the identity fields that were not given as flags.
func loginForm(u *domain.UserIdentity, staffID, lang *string) *huh.Form {
	required := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("required")
		}
		return nil
	}

	langOptions := make([]huh.Option[string], 0, len(i18n.Languages()))
	for _, l := range i18n.Languages() {
		langOptions = append(langOptions, huh.NewOption(strings.ToUpper(l), l))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(&u.Email).Validate(required),
			huh.NewInput().Title("Staff id").Value(staffID).Validate(required),
			huh.NewInput().Title("First name").Value(&u.FirstName),
			huh.NewInput().Title("Last name").Value(&u.LastName),
			huh.NewSelect[string]().Title("Language").Options(langOptions...).Value(lang),
		),
	).WithTheme(focusHuhTheme()).WithShowHelp(false)
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored identity and language",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Identity.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newLangCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "lang [en|tr]",
		Short:     "Show or change the interface language",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: i18n.Languages(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				if err := app.Identity.SetLanguage(ctx, args[0]); err != nil {
					return err
				}
			}
			lang, err := app.Identity.Language(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.ToUpper(lang))
			return nil
		},
	}
}
