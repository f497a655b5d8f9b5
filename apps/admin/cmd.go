package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/festify/console/core"
	"github.com/festify/console/core/admin"
	"github.com/festify/console/core/timeline"
	"github.com/festify/console/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	timelineSvc timeline.ServiceInterface
	adminSvc    admin.ServiceInterface
	userSvc     user.ServiceInterface
	translator  ut.Translator
	out         io.Writer
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Festify console administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(cli.out)
	root.AddCommand(cli.createAdminCmd(), cli.seedTimelinesCmd(), cli.wipeUserCmd())
	return root
}

func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	if len(args) < 2 {
		_ = root.Usage()
		return errHelp
	}
	root.SetArgs(args[1:])
	if err := root.ExecuteContext(context.Background()); err != nil {
		return cli.describe(err)
	}
	return nil
}

func (cli *commandLine) createAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createadmin",
		Short: "Create a console admin. The password is prompted next.",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			email, _ := cmd.Flags().GetString("email")
			if username == "" || email == "" {
				_ = cmd.Usage()
				return errHelp
			}

			fmt.Fprint(cli.out, "Enter password:")
			pwd, err := readPasswordFunc(int(syscall.Stdin))
			fmt.Fprintln(cli.out)
			if err != nil {
				return err
			}
			if len(pwd) == 0 {
				_ = cmd.Usage()
				return errHelp
			}

			adm, err := cli.adminSvc.Create(cmd.Context(), admin.NewAdmin{Username: username, Email: email, Password: string(pwd)})
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "Admin %s created with id %s\n", adm.Username, adm.ID)
			return nil
		},
	}
	cmd.Flags().String("username", "", "The admin's username")
	cmd.Flags().String("email", "", "The admin's sign-in email")
	return cmd
}

func (cli *commandLine) seedTimelinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seedtimelines",
		Short: "Create an empty timeline for every season that has none",
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := cli.timelineSvc.Seed(cmd.Context())
			if err != nil {
				return err
			}
			if len(created) == 0 {
				fmt.Fprintln(cli.out, "All timelines already exist")
				return nil
			}
			names := make([]string, 0, len(created))
			for _, s := range created {
				names = append(names, s.String())
			}
			fmt.Fprintf(cli.out, "Created timelines: %s\n", strings.Join(names, ", "))
			return nil
		},
	}
}

func (cli *commandLine) wipeUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wipeuser",
		Short: "Reset a mobile user's progress and remove their avatar",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			if id == "" {
				_ = cmd.Usage()
				return errHelp
			}
			if err := cli.userSvc.Wipe(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "User %s wiped\n", id)
			return nil
		},
	}
	cmd.Flags().String("id", "", "The user's id")
	return cmd
}

// describe turns validation failures into readable messages.
func (cli *commandLine) describe(err error) error {
	var fldErrs validator.ValidationErrors
	if errors.As(err, &fldErrs) {
		msgs := make([]string, 0, len(fldErrs))
		for _, fErr := range fldErrs {
			msgs = append(msgs, fErr.Translate(cli.translator))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	var vErr *core.ValidationError
	if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
		msgs := make([]string, 0, len(vErr.Fields))
		for _, f := range vErr.Fields {
			msgs = append(msgs, f.Field+": "+f.Error)
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return err
}
