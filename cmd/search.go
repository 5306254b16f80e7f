package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/pxpub/filter"
	"github.com/s0up4200/pxpub/fivehundredpx"
)

var (
	searchTags    []string
	searchRPP     int
	searchPage    int
	searchSort    string
	searchOnly    string
	searchExclude string
	searchWhere   string
	searchPreset  string
	searchJSON    bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search photos and filter the results",
	Long: `Search 500px photos by term and/or tags. The photos of the returned page can be
narrowed down with a filter expression evaluated against each photo's fields,
for example: --where 'rating > 80 and hasTag("sunset")'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVarP(&searchTags, "tag", "t", nil, "tag to search for (repeatable)")
	searchCmd.Flags().IntVar(&searchRPP, "rpp", 20, "results per page")
	searchCmd.Flags().IntVar(&searchPage, "page", 0, "page number")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "sort order (e.g. rating, times_viewed, created_at)")
	searchCmd.Flags().StringVar(&searchOnly, "only", "", "only include this category")
	searchCmd.Flags().StringVar(&searchExclude, "exclude", "", "exclude this category")
	searchCmd.Flags().StringVarP(&searchWhere, "where", "w", "", "filter expression applied to each photo")
	searchCmd.Flags().StringVarP(&searchPreset, "preset", "p", "", "use a preset filter from config")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print matching photos as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	opts := fivehundredpx.PhotoSearchOptions{
		Tags:           searchTags,
		Sort:           searchSort,
		Only:           searchOnly,
		Exclude:        searchExclude,
		ResultsPerPage: searchRPP,
		Page:           searchPage,
	}
	if len(args) == 1 {
		opts.Term = args[0]
	}

	f, err := filters.Resolve(searchWhere, searchPreset, cfg.Filter.DefaultExpression)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	event := logger.Info().Str("term", opts.Term).Strs("tags", opts.Tags)
	if f != nil {
		event = event.Str("filter", f.Expression())
	}
	event.Msg("Searching photos")

	resp, err := client.SearchPhotos(cmd.Context(), opts)
	if err != nil {
		return err
	}

	photos := selectPhotos(resp, f)
	logger.Debug().
		Int64("total_items", resp.Get("total_items").Int()).
		Int("matched", len(photos)).
		Msg("Search complete")

	if searchJSON {
		out, err := json.MarshalIndent(photos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode photos: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if len(photos) == 0 {
		fmt.Println("No photos found matching the search criteria.")
		return nil
	}

	fmt.Printf("\nFound %d photos:\n", len(photos))
	fmt.Println(strings.Repeat("-", 80))
	for _, photo := range photos {
		fmt.Println(describePhoto(photo))
	}

	return nil
}

// selectPhotos returns the photo objects of a search response that match f.
// A nil filter keeps every photo.
func selectPhotos(resp *fivehundredpx.Response, f filter.Filter) []filter.Item {
	body, ok := resp.Data.(map[string]any)
	if !ok {
		return nil
	}
	items, _ := body["photos"].([]any)

	if f == nil {
		photos := make([]filter.Item, 0, len(items))
		for _, v := range items {
			if item, ok := v.(map[string]any); ok {
				photos = append(photos, item)
			}
		}
		return photos
	}

	return filter.Apply(f, items)
}

// describePhoto formats one photo for list output
func describePhoto(photo filter.Item) string {
	line := fmt.Sprintf("• %v (ID: %v)", valueOr(photo["name"], "Untitled"), photo["id"])
	if rating, ok := photo["rating"]; ok && rating != nil {
		line += fmt.Sprintf(" rating %v", rating)
	}
	if user, ok := photo["user"].(map[string]any); ok {
		if username, ok := user["username"]; ok && username != nil {
			line += fmt.Sprintf(" by %v", username)
		}
	}
	return line
}

func valueOr(v any, fallback string) any {
	if v == nil || v == "" {
		return fallback
	}
	return v
}
