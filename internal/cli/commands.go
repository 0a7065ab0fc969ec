package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"chefdhundo-backend/internal/directory"
	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/store"
	"chefdhundo-backend/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newChefsCommand(a *runner) *cobra.Command {
	var (
		search     string
		experience string
		profession string
		page       int
		role       string
	)

	cmd := &cobra.Command{
		Use:   "chefs",
		Short: "Print one directory page as a viewer with the given role sees it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			exp, err := directory.ParseExperience(experience)
			if err != nil {
				return err
			}
			viewer := domain.NormalizeRole(role)

			ctx, cancel := a.context(cmd)
			defer cancel()

			candidates := store.NewCandidateStore(a.src.Candidates)
			if err := candidates.Fetch(ctx); err != nil {
				return fmt.Errorf("fetching resumes: %w", err)
			}
			records := candidates.Items()

			res := directory.Apply(records, directory.Query{
				Search:     search,
				Experience: exp,
				Profession: profession,
				Page:       page,
			})
			items := make([]domain.Candidate, len(res.Items))
			for i, c := range res.Items {
				items[i] = c.Masked(viewer)
			}

			a.logger.Debug("directory page built",
				zap.Int("records", len(records)),
				zap.Int("matches", res.Total),
				zap.String("role", string(viewer)))

			return printJSON(cmd.OutOrStdout(), usecase.ChefPage{
				Items:       items,
				Total:       res.Total,
				TotalPages:  res.TotalPages,
				Page:        res.Page,
				PageSize:    directory.PageSize,
				Professions: directory.Professions(records),
				Filters:     usecase.ChefFilters{Search: search, Experience: exp, Profession: profession},
				ViewerRole:  viewer,
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive search term")
	cmd.Flags().StringVarP(&experience, "experience", "e", directory.All, "all, fresher, medium, high or pro")
	cmd.Flags().StringVarP(&profession, "profession", "p", directory.All, "job type or all")
	cmd.Flags().IntVar(&page, "page", 1, "1-based page number")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleBasic), "viewer role used for masking (basic or pro)")
	return cmd
}

func newProfessionsCommand(a *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "professions",
		Short: "List the distinct job types in the directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			records, err := a.src.Candidates.List(ctx)
			if err != nil {
				return fmt.Errorf("fetching resumes: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), directory.Professions(records))
		},
	}
}

func newUsersCommand(a *runner) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users, or resolve the role of one email",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			users, err := a.src.Users.List(ctx)
			if err != nil {
				return fmt.Errorf("fetching users: %w", err)
			}
			if email != "" {
				return printJSON(cmd.OutOrStdout(), usecase.ResolveRole(users, email))
			}
			return printJSON(cmd.OutOrStdout(), users)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "resolve the role state of this exact email")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, version)
		},
	}
}
