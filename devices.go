package reflow

// Device describes a reader screen.
type Device struct {
	Name   string
	Width  int // pixels
	Height int // pixels
	DPI    int
}

// Devices holds presets for common e-readers, keyed by short name.
var Devices = map[string]Device{
	"k2":     {Name: "Kindle 2", Width: 560, Height: 735, DPI: 167},
	"dx":     {Name: "Kindle DX", Width: 800, Height: 1180, DPI: 167},
	"kpw":    {Name: "Kindle Paperwhite", Width: 658, Height: 889, DPI: 212},
	"kp3":    {Name: "Kindle Paperwhite 3", Width: 1016, Height: 1364, DPI: 300},
	"kv":     {Name: "Kindle Voyage", Width: 1016, Height: 1364, DPI: 300},
	"ko2":    {Name: "Kindle Oasis 2", Width: 1200, Height: 1583, DPI: 300},
	"kbt":    {Name: "Kobo Touch", Width: 600, Height: 730, DPI: 167},
	"kbg":    {Name: "Kobo Glo", Width: 758, Height: 932, DPI: 213},
	"kghd":   {Name: "Kobo Glo HD", Width: 1072, Height: 1328, DPI: 300},
	"nookst": {Name: "Nook Simple Touch", Width: 552, Height: 725, DPI: 167},
}
