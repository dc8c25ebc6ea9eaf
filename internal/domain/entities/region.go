package entities

// RegionProperties are the identifying properties of a map feature.
type RegionProperties struct {
	Name   string // "name"
	Key    string // "hc-key"
	Alpha2 string // "hc-a2"
}

// DisplayName returns the region name, falling back to its key.
// An empty result means the region cannot be selected.
func (p RegionProperties) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Key
}

// Region is a selectable entry of the map catalog.
type Region struct {
	Properties RegionProperties
	Flag       string
}

// Name is a shortcut for Properties.DisplayName.
func (r Region) Name() string {
	return r.Properties.DisplayName()
}
