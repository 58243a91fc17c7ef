package champion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://ddragon.leagueoflegends.com"
	fetchTimeout   = 15 * time.Second
)

// DataDragon fetches champion data from Riot's public CDN.
type DataDragon struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewDataDragon returns a fetcher against the public CDN.
func NewDataDragon() *DataDragon {
	return &DataDragon{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: fetchTimeout},
	}
}

// LatestVersion returns the newest Data Dragon version string.
func (d *DataDragon) LatestVersion(ctx context.Context) (string, error) {
	var versions []string
	if err := d.getJSON(ctx, "/api/versions.json", &versions); err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("ddragon: empty version list")
	}
	return versions[0], nil
}

// FetchTable downloads the champion list for a version and flattens it into
// a name -> id table containing both the key name and the display name.
func (d *DataDragon) FetchTable(ctx context.Context, version string) (map[string]ID, error) {
	var file struct {
		Data map[string]struct {
			Key  string `json:"key"`
			Name string `json:"name"`
		} `json:"data"`
	}
	path := fmt.Sprintf("/cdn/%s/data/en_US/champion.json", version)
	if err := d.getJSON(ctx, path, &file); err != nil {
		return nil, err
	}

	table := make(map[string]ID, 2*len(file.Data))
	for keyName, entry := range file.Data {
		id, err := strconv.Atoi(entry.Key)
		if err != nil {
			continue
		}
		table[keyName] = ID(id)
		if entry.Name != "" {
			table[entry.Name] = ID(id)
		}
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("ddragon: champion table for %s is empty", version)
	}
	return table, nil
}

func (d *DataDragon) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ddragon: GET %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
