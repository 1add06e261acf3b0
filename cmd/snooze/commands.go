package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atinyakov/hack-or-snooze/internal/apiclient"
	"github.com/atinyakov/hack-or-snooze/internal/config"
	"github.com/atinyakov/hack-or-snooze/internal/credentials"
	"github.com/atinyakov/hack-or-snooze/internal/domain"
	"github.com/atinyakov/hack-or-snooze/internal/logger"
	"github.com/atinyakov/hack-or-snooze/internal/models"
	"github.com/atinyakov/hack-or-snooze/internal/session"
)

// app is built once flags are parsed and shared by all commands.
type app struct {
	cfg   *config.Client
	log   *logger.Logger
	store *credentials.FileStore
	sess  *session.Session
}

func (a *app) init() error {
	a.log = logger.New()
	if err := a.log.InitConsole(a.cfg.LogLevel); err != nil {
		return fmt.Errorf("log level %q: %w", a.cfg.LogLevel, err)
	}

	client, err := apiclient.New(a.cfg.BaseURL, a.cfg.Timeout, a.log.Log)
	if err != nil {
		return err
	}

	a.store = credentials.NewFileStore(a.cfg.CredentialsPath)
	a.sess = session.New(domain.NewService(client, a.log.Log), a.store, a.log.Log)

	return nil
}

func (a *app) start(ctx context.Context) error {
	return a.sess.Start(ctx)
}

func (a *app) user() (*domain.User, error) {
	u, ok := a.sess.CurrentUser()
	if !ok {
		return nil, errLoginFirst
	}
	return u, nil
}

var errLoginFirst = errors.New("not logged in, run `snooze login <username>` first")

func loginHint(err error) error {
	if errors.Is(err, models.ErrNotAuthenticated) {
		return errLoginFirst
	}
	return err
}

func newRootCmd(cfg *config.Client) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:   "snooze",
		Short: "Read and share stories on a hack-or-snooze server",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "API base URL")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout")
	flags.StringVar(&cfg.CredentialsPath, "credentials", cfg.CredentialsPath, "credentials file")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	root.AddCommand(
		newStoriesCmd(a),
		newSubmitCmd(a),
		newDeleteCmd(a),
		newFavoriteCmd(a),
		newUnfavoriteCmd(a),
		newSignupCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
	)

	return root
}

func newStoriesCmd(a *app) *cobra.Command {
	var mine, favorites bool

	cmd := &cobra.Command{
		Use:   "stories",
		Short: "List stories, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.start(cmd.Context()); err != nil {
				return err
			}

			st := newStyles(cmd.OutOrStdout())
			u, loggedIn := a.sess.CurrentUser()

			var marked markFunc
			if loggedIn {
				marked = u.IsFavorite
			}

			switch {
			case mine:
				if !loggedIn {
					return errLoginFirst
				}
				st.stories(cmd.OutOrStdout(), u.OwnStories(), marked, "You have not posted any stories.")
			case favorites:
				if !loggedIn {
					return errLoginFirst
				}
				st.stories(cmd.OutOrStdout(), u.Favorites(), marked, "No favorites added!")
			default:
				st.stories(cmd.OutOrStdout(), a.sess.Stories().Stories(), marked, "No stories yet.")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&mine, "mine", false, "only stories you posted")
	cmd.Flags().BoolVar(&favorites, "favorites", false, "only your favorites")
	cmd.MarkFlagsMutuallyExclusive("mine", "favorites")

	return cmd
}

func newSubmitCmd(a *app) *cobra.Command {
	var in domain.NewStoryInput

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Post a new story",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.start(cmd.Context()); err != nil {
				return err
			}

			s, err := a.sess.AddStory(cmd.Context(), in)
			if err != nil {
				return loginHint(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), newStyles(cmd.OutOrStdout()).story(s, nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "story title")
	cmd.Flags().StringVar(&in.Author, "author", "", "story author")
	cmd.Flags().StringVar(&in.URL, "url", "", "story url")
	for _, f := range []string{"title", "author", "url"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <story-id>",
		Short: "Delete one of your stories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.start(cmd.Context()); err != nil {
				return err
			}

			if err := a.sess.RemoveStory(cmd.Context(), args[0]); err != nil {
				return loginHint(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newFavoriteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <story-id>",
		Short: "Add a story to your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.start(cmd.Context()); err != nil {
				return err
			}

			if err := a.sess.AddFavorite(cmd.Context(), args[0]); err != nil {
				return loginHint(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Favorite Added Successfully!")
			return nil
		},
	}
}

func newUnfavoriteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unfavorite <story-id>",
		Short: "Remove a story from your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.start(cmd.Context()); err != nil {
				return err
			}

			if err := a.sess.RemoveFavorite(cmd.Context(), args[0]); err != nil {
				return loginHint(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Favorite Removed Successfully!")
			return nil
		},
	}
}

func newSignupCmd(a *app) *cobra.Command {
	var name, password string

	cmd := &cobra.Command{
		Use:   "signup <username>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.sess.Signup(cmd.Context(), args[0], password, name)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! You are logged in as %s.\n", u.Name, u.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and remember the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.sess.Login(cmd.Context(), args[0], password)
			if err != nil {
				var authErr *models.AuthError
				if errors.As(err, &authErr) {
					return fmt.Errorf("login failed: %s", authErr.Message)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", u.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sess.Logout(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.start(cmd.Context()); err != nil {
				return err
			}

			u, err := a.user()
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\nstories: %d, favorites: %d\n",
				u.Username, u.Name, len(u.OwnStories()), len(u.Favorites()))
			return nil
		},
	}
}
