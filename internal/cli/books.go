package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ztacole/BacaDong/internal/database/books"
	"github.com/ztacole/BacaDong/internal/entities"
	"github.com/ztacole/BacaDong/internal/entrypoint"
)

type listFunc func(ctx context.Context, app *entrypoint.App, limit int) ([]entities.CatalogBook, error)

func newBooksCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "books",
		Aliases: []string{"book"},
		Short:   "Browse the catalog",
	}

	cmd.AddCommand(
		newBookListCommand(opts, "newest", "Most recently published books",
			func(ctx context.Context, app *entrypoint.App, limit int) ([]entities.CatalogBook, error) {
				return app.Books.Newest(ctx, limit)
			}),
		newBookListCommand(opts, "top-rated", "Books by average rating",
			func(ctx context.Context, app *entrypoint.App, limit int) ([]entities.CatalogBook, error) {
				return app.Books.TopRated(ctx, limit)
			}),
		newBookListCommand(opts, "most-viewed", "Books by number of views",
			func(ctx context.Context, app *entrypoint.App, limit int) ([]entities.CatalogBook, error) {
				return app.Books.MostViewed(ctx, limit)
			}),
		newBookCategoryCommand(opts),
		newBookSearchCommand(opts),
		newBookShowCommand(opts),
		newBookViewCommand(opts),
		newBookRateCommand(opts),
		newBookStatsCommand(opts),
		newBookCoverCommand(opts),
	)
	return cmd
}

func newBookListCommand(opts *rootOptions, use, short string, list listFunc) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cfg, err := opts.open()
			if err != nil {
				return err
			}
			defer app.Close()

			if !cmd.Flags().Changed("limit") {
				limit = cfg.Catalog.SectionSize
			}
			found, err := list(cmd.Context(), app, limit)
			if err != nil {
				return err
			}
			printBooks(cmd.OutOrStdout(), found)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of books (default CATALOG_SECTION_SIZE)")
	return cmd
}

func newBookCategoryCommand(opts *rootOptions) *cobra.Command {
	var sort string
	cmd := &cobra.Command{
		Use:   "category <name>",
		Short: "Books in a category",
		Long:  "Sort keys: popular, rating, newest, oldest, alphabetical.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := opts.open()
			if err != nil {
				return err
			}
			defer app.Close()

			page, err := app.Catalog.CategoryPage(cmd.Context(), args[0], sort)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (sorted by %s)\n", page.Category, page.Sort)
			printBooks(out, page.Books)
			return nil
		},
	}
	cmd.Flags().StringVar(&sort, "sort", "", "sort key (default CATALOG_DEFAULT_SORT)")
	return cmd
}

func newBookSearchCommand(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find books by title or author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := opts.open()
			if err != nil {
				return err
			}
			defer app.Close()

			found, err := app.Books.Search(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			printBooks(cmd.OutOrStdout(), found)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results")
	return cmd
}

func newBookShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a book and its chapters without recording a view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, _, err := opts.open()
			if err != nil {
				return err
			}
			defer app.Close()

			book, err := app.Books.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			contents, err := app.Books.Contents(cmd.Context(), id)
			if err != nil {
				return err
			}
			printBook(cmd.OutOrStdout(), book, contents)
			return nil
		},
	}
}

func newBookViewCommand(opts *rootOptions) *cobra.Command {
	var member uint
	cmd := &cobra.Command{
		Use:   "view <id>",
		Short: "Open a book as a member, recording the view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, cfg, err := opts.open()
			if err != nil {
				return err
			}
			defer app.Close()

			if member == 0 {
				member = cfg.Catalog.DefaultMemberID
			}
			page, err := app.Catalog.OpenBook(cmd.Context(), id, member)
			if err != nil {
				return err
			}

			contents := make([]entities.BookContent, len(page.Chapters))
			for i, ch := range page.Chapters {
				contents[i] = ch.BookContent
				contents[i].Content = ch.Preview
			}
			printBook(cmd.OutOrStdout(), page.Book, contents)
			return nil
		},
	}
	cmd.Flags().UintVar(&member, "member", 0, "member id (default CATALOG_DEFAULT_MEMBER_ID)")
	return cmd
}

func newBookRateCommand(opts *rootOptions) *cobra.Command {
	var member uint
	cmd := &cobra.Command{
		Use:   "rate <id> <rating>",
		Short: "Rate a book from 0 to 5 as a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rating, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid rating: %s", args[1])
			}
			app, cfg, err := opts.open()
			if err != nil {
				return err
			}
			defer app.Close()

			if member == 0 {
				member = cfg.Catalog.DefaultMemberID
			}
			if _, err := app.Members.GetByID(cmd.Context(), member); err != nil {
				return err
			}
			exists, err := app.Books.Exists(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !exists {
				return books.ErrBookNotFound
			}
			if err := app.Books.RateBook(cmd.Context(), id, member, rating); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Member %d rated book %d: %d\n", member, id, rating)
			return nil
		},
	}
	cmd.Flags().UintVar(&member, "member", 0, "member id (default CATALOG_DEFAULT_MEMBER_ID)")
	return cmd
}

func newBookStatsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Catalog totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := opts.open()
			if err != nil {
				return err
			}
			defer app.Close()

			stats, err := app.Books.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Books:      %d\n", stats.Books)
			fmt.Fprintf(out, "Categories: %d\n", stats.Categories)
			fmt.Fprintf(out, "Members:    %d\n", stats.Members)
			fmt.Fprintf(out, "Views:      %d\n", stats.Views)
			return nil
		},
	}
}

func newBookCoverCommand(opts *rootOptions) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "cover <id>",
		Short: "Print the local file of a book's cover, downloading it if needed",
		Long:  "With --refresh, covers downloaded earlier for the book are removed and fetched again.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, _, err := opts.open()
			if err != nil {
				return err
			}
			defer app.Close()

			if app.Covers == nil {
				return errors.New("covers are disabled: set COVERS_DIR")
			}
			book, err := app.Books.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if refresh {
				if err := app.Covers.Invalidate(id); err != nil {
					return fmt.Errorf("invalidate cover of book %d: %w", id, err)
				}
			}
			path, err := app.Covers.Resolve(cmd.Context(), id, book.ImageCover)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "download remote covers again")
	return cmd
}
