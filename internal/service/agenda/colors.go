package agenda

import (
	"hash/fnv"

	"github.com/medagenda/agenda-api/internal/model"
)

// palette backs calendars that were configured without a color. Assignment is
// keyed on the calendar id so a calendar keeps its color across reloads.
var palette = []string{
	"#3788d8", "#e67c73", "#33b679", "#f6bf26", "#8e24aa",
	"#039be5", "#ef6c00", "#7986cb", "#0b8043", "#d50000",
}

// eventColor picks the rendering color: motive color wins over calendar
// color, with a deterministic palette fallback.
func eventColor(cal model.Calendar, motive model.Motive) string {
	if motive.Color != "" {
		return motive.Color
	}
	if cal.Color != "" {
		return cal.Color
	}
	h := fnv.New32a()
	h.Write([]byte(cal.ID))
	return palette[h.Sum32()%uint32(len(palette))]
}
