package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Sternrassler/places-client/pkg/client"
	"github.com/Sternrassler/places-client/pkg/places"
	"github.com/Sternrassler/places-client/pkg/search"
	"github.com/spf13/cobra"
)

func cmdSearch() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a single query and print the result as JSON",
	}

	cmd.AddCommand(cmdSearchText())
	cmd.AddCommand(cmdSearchNearby())
	cmd.AddCommand(cmdSearchDetails())
	cmd.AddCommand(cmdSearchPhoto())

	return cmd
}

// searchFlags are shared by the search commands.
type searchFlags struct {
	pages    int
	language string
	location string
	radius   float64
	typ      string
	retries  int
}

func (f *searchFlags) register(cmd *cobra.Command, paged bool) {
	if paged {
		cmd.Flags().IntVar(&f.pages, "pages", defaultMaxPages, "Maximum number of pages to fetch")
		cmd.Flags().StringVar(&f.location, "location", "", "Location as lat,lng")
		cmd.Flags().Float64Var(&f.radius, "radius", 0, "Radius in meters")
		cmd.Flags().StringVar(&f.typ, "type", "", "Restrict results to a place type")
	}
	cmd.Flags().StringVar(&f.language, "language", "", "Result language")
	cmd.Flags().IntVar(&f.retries, "retries", 1, "Attempts per query")
}

func (f *searchFlags) parseLocation() (places.Location, bool, error) {
	if f.location == "" {
		return places.Location{}, false, nil
	}
	loc, err := places.ParseLocation(f.location)
	if err != nil {
		return places.Location{}, false, fmt.Errorf("invalid --location: %w", err)
	}
	return loc, true, nil
}

func (f *searchFlags) retryConfig() client.RetryConfig {
	cfg := client.DefaultRetryConfig()
	cfg.MaxAttempts = f.retries
	return cfg
}

// withApp builds the app, runs fn with retry and closes the app.
func withApp(cmd *cobra.Command, retry client.RetryConfig, fn func(ctx context.Context, svc *search.Service) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	return client.Retry(cmd.Context(), retry, func(ctx context.Context) error {
		return fn(ctx, a.svc)
	})
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func cmdSearchText() *cobra.Command {
	var (
		flags     searchFlags
		pageToken string
		region    string
	)

	cmd := &cobra.Command{
		Use:   "text QUERY",
		Short: "Text search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, hasLoc, err := flags.parseLocation()
			if err != nil {
				return err
			}

			var result *search.Result
			err = withApp(cmd, flags.retryConfig(), func(ctx context.Context, svc *search.Service) error {
				q := svc.TextSearch().WithQuery(args[0])
				if hasLoc {
					q.WithLocation(loc)
				}
				if flags.radius > 0 {
					q.WithRadius(flags.radius)
				}
				if flags.language != "" {
					q.WithLanguage(places.Language(flags.language))
				}
				if flags.typ != "" {
					q.WithType(places.PlaceType(flags.typ))
				}
				if region != "" {
					q.WithRegion(region)
				}
				if pageToken != "" {
					q.WithPageToken(pageToken)
				}

				var err error
				result, err = q.Execute(ctx, flags.pages)
				return err
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, newSearchResponse(result))
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVar(&pageToken, "page-token", "", "Resume from a continuation token")
	cmd.Flags().StringVar(&region, "region", "", "Region code")

	return cmd
}

func cmdSearchNearby() *cobra.Command {
	var (
		flags     searchFlags
		pageToken string
		keyword   string
		rankBy    string
	)

	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "Nearby search around --location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, hasLoc, err := flags.parseLocation()
			if err != nil {
				return err
			}

			var result *search.Result
			err = withApp(cmd, flags.retryConfig(), func(ctx context.Context, svc *search.Service) error {
				q := svc.NearbySearch()
				if hasLoc {
					q.WithLocation(loc)
				}
				if flags.radius > 0 {
					q.WithRadius(flags.radius)
				}
				if keyword != "" {
					q.WithKeyword(keyword)
				}
				if flags.language != "" {
					q.WithLanguage(places.Language(flags.language))
				}
				if flags.typ != "" {
					q.WithType(places.PlaceType(flags.typ))
				}
				if rankBy != "" {
					q.WithRankBy(places.RankBy(rankBy))
				}
				if pageToken != "" {
					q.WithPageToken(pageToken)
				}

				var err error
				result, err = q.Execute(ctx, flags.pages)
				return err
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, newSearchResponse(result))
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVar(&pageToken, "page-token", "", "Resume from a continuation token")
	cmd.Flags().StringVar(&keyword, "keyword", "", "Keyword to match")
	cmd.Flags().StringVar(&rankBy, "rank-by", "", "prominence or distance")

	return cmd
}

func cmdSearchDetails() *cobra.Command {
	var (
		flags  searchFlags
		fields string
	)

	cmd := &cobra.Command{
		Use:   "details PLACE_ID",
		Short: "Fetch place details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseFields(fields)
			if err != nil {
				return err
			}

			var result *places.DetailsResult
			err = withApp(cmd, flags.retryConfig(), func(ctx context.Context, svc *search.Service) error {
				q := svc.PlaceDetails().WithPlaceID(args[0])
				if len(parsed) > 0 {
					q.WithFields(parsed...)
				}
				if flags.language != "" {
					q.WithLanguage(places.Language(flags.language))
				}

				var err error
				result, err = q.Execute(ctx)
				return err
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVar(&fields, "fields", "", "Comma-separated fields to request")

	return cmd
}

func cmdSearchPhoto() *cobra.Command {
	var (
		flags     searchFlags
		maxWidth  int
		maxHeight int
		output    string
	)

	cmd := &cobra.Command{
		Use:   "photo PHOTO_REFERENCE",
		Short: "Download a place photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var photo *search.Photo
			err := withApp(cmd, flags.retryConfig(), func(ctx context.Context, svc *search.Service) error {
				q := svc.PlacePhoto().WithPhotoReference(args[0])
				if maxWidth > 0 {
					q.WithMaxWidth(maxWidth)
				}
				if maxHeight > 0 {
					q.WithMaxHeight(maxHeight)
				}

				var err error
				photo, err = q.Execute(ctx)
				return err
			})
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(photo.Data)
				return err
			}
			if err := os.WriteFile(output, photo.Data, 0o644); err != nil {
				return fmt.Errorf("write photo: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d bytes (%s) to %s\n", len(photo.Data), photo.ContentType, output)
			return nil
		},
	}

	flags.register(cmd, false)
	cmd.Flags().IntVar(&maxWidth, "max-width", 400, "Maximum width in pixels")
	cmd.Flags().IntVar(&maxHeight, "max-height", 0, "Maximum height in pixels")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}
