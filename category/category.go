package category

// Category is one of the six fixed playlist groups a channel is sorted into.
type Category int

const (
	CCTV Category = iota
	WeiShi
	Local
	HKMOTW
	City
	Other
)

// order is the fixed order categories are written in.
var order = []Category{CCTV, WeiShi, Local, HKMOTW, City, Other}

var labels = map[Category]string{
	CCTV:   "央视频道",
	WeiShi: "卫视频道",
	Local:  "省级频道",
	HKMOTW: "港澳台频道",
	City:   "市级频道",
	Other:  "其它频道",
}

var names = map[Category]string{
	CCTV:   "cctv",
	WeiShi: "weishi",
	Local:  "local",
	HKMOTW: "hkmotw",
	City:   "city",
	Other:  "other",
}

// Order returns the categories in output order. The slice is a copy.
func Order() []Category {
	out := make([]Category, len(order))
	copy(out, order)
	return out
}

// Label returns the display label written as group-title.
func (c Category) Label() string {
	return labels[c]
}

func (c Category) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return "unknown"
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
