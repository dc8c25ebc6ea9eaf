package geo

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
)

// topology is the subset of a TopoJSON document needed to list features.
// Arcs and transforms are ignored: the map is rendered as a keyboard, not drawn.
type topology struct {
	Type    string                    `json:"type"`
	Objects map[string]geometryObject `json:"objects"`
}

type geometryObject struct {
	Type       string           `json:"type"`
	Geometries []geometryObject `json:"geometries"`
	Properties map[string]any   `json:"properties"`
}

// ParseRegions extracts selectable regions from a TopoJSON document.
// Features without a name and key are skipped; duplicates by key keep the first one.
func ParseRegions(data []byte) ([]entities.Region, error) {
	var topo topology
	if err := json.Unmarshal(data, &topo); err != nil {
		return nil, fmt.Errorf("decode topology: %w", err)
	}

	if topo.Type != "Topology" {
		return nil, fmt.Errorf("decode topology: unexpected type %q", topo.Type)
	}

	seen := make(map[string]bool)
	var regions []entities.Region

	var walk func(obj geometryObject)
	walk = func(obj geometryObject) {
		if obj.Type == "GeometryCollection" {
			for _, g := range obj.Geometries {
				walk(g)
			}
			return
		}

		props := regionProperties(obj.Properties)
		id := regionID(props)
		if id == "" || seen[id] {
			return
		}
		seen[id] = true

		regions = append(regions, entities.Region{
			Properties: props,
			Flag:       FlagEmoji(props.Alpha2),
		})
	}

	names := make([]string, 0, len(topo.Objects))
	for name := range topo.Objects {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		walk(topo.Objects[name])
	}

	sort.SliceStable(regions, func(i, j int) bool {
		return strings.ToLower(regions[i].Name()) < strings.ToLower(regions[j].Name())
	})

	return regions, nil
}

func regionProperties(raw map[string]any) entities.RegionProperties {
	return entities.RegionProperties{
		Name:   stringProp(raw, "name"),
		Key:    stringProp(raw, "hc-key"),
		Alpha2: stringProp(raw, "hc-a2"),
	}
}

// regionID is the key used in callback data; the name is used when a key is missing.
func regionID(p entities.RegionProperties) string {
	if p.Key != "" {
		return p.Key
	}
	return p.Name
}

func stringProp(raw map[string]any, key string) string {
	v, ok := raw[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}
