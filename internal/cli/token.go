package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mithrel/pressgen/internal/keys"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "token",
		Short:       "Manage the bearer token sent to the generation webhook",
		Annotations: noApp(),
	}
	cmd.AddCommand(newTokenSetCmd())
	cmd.AddCommand(newTokenDeleteCmd())
	return cmd
}

func newTokenSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [token]",
		Short: "Store the webhook token (reads stdin when no argument is given)",
		Long: `Store the webhook token with the provider named by webhook.token_provider:
"keyring" uses the OS keyring, "config" writes webhook.token to the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := getConfig(cmd)
			if v.GetString("webhook.token_provider") == "keyring" && !keys.KeyringAvailable() {
				return errors.New("no system keyring available; set webhook.token_provider = \"config\"")
			}
			var tok string
			if len(args) == 1 {
				tok = args[0]
			} else {
				var err error
				tok, err = readToken(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}
			tok = strings.TrimSpace(tok)
			if tok == "" {
				return errors.New("token is empty")
			}
			store, err := keys.ForProvider(v, true)
			if err != nil {
				return err
			}
			if err := store.Put(keys.WebhookTokenID, tok); err != nil {
				return fmt.Errorf("store token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Webhook token saved")
			return nil
		},
	}
}

func newTokenDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Remove the stored webhook token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := keys.ForProvider(getConfig(cmd), true)
			if err != nil {
				return err
			}
			if err := store.Delete(keys.WebhookTokenID); err != nil {
				return fmt.Errorf("delete token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Webhook token removed")
			return nil
		},
	}
}

// readToken prompts without echo on a terminal, else reads one line.
func readToken(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Webhook token: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		return string(b), err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return line, nil
}
