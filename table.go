package iconbake

// Entry is one slot in a size table: a square pixel dimension and the file
// name it is rendered to. A slot with an empty Filename is a size the target
// platform declares but does not currently need; it is skipped without
// halting the run.
type Entry struct {
	Px       int    `yaml:"px" json:"px"`
	Filename string `yaml:"filename,omitempty" json:"filename,omitempty"`
}

// SizeTable is the ordered list of icon slots driving a run. Order matters:
// two slots may map to the same file name, and the slot processed later
// overwrites the earlier file. An ordered slice keeps that deterministic.
type SizeTable []Entry

// AppleAppIcon covers the sizes an iOS app icon set (Contents.json) asks for.
// The 20pt@1x slot is declared but unused on current targets.
var AppleAppIcon = SizeTable{
	{Px: 20},
	{Px: 29, Filename: "icon-29.png"},
	{Px: 40, Filename: "icon-40.png"},
	{Px: 58, Filename: "icon-58.png"},
	{Px: 60, Filename: "icon-60.png"},
	{Px: 76, Filename: "icon-76.png"},
	{Px: 80, Filename: "icon-80.png"},
	{Px: 87, Filename: "icon-87.png"},
	{Px: 120, Filename: "icon-120.png"},
	{Px: 152, Filename: "icon-152.png"},
	{Px: 167, Filename: "icon-167.png"},
	{Px: 180, Filename: "icon-180.png"},
	{Px: 1024, Filename: "icon-1024.png"},
}

// Filenames returns the file names the table will write, in slot order.
// Slots without a file name are omitted.
func (t SizeTable) Filenames() []string {
	var names []string
	for _, e := range t {
		if e.Filename == "" {
			continue
		}
		names = append(names, e.Filename)
	}
	return names
}

// Largest returns the slot with the biggest dimension that has a file name.
func (t SizeTable) Largest() (Entry, bool) {
	var largest Entry
	found := false
	for _, e := range t {
		if e.Filename == "" {
			continue
		}
		if !found || e.Px > largest.Px {
			largest = e
			found = true
		}
	}
	return largest, found
}
