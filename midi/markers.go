package midi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/reprise/model"
)

const (
	repeatMarker = "repeat"
	endingMarker = "ending"
)

func repeatText(r model.Repeat) string {
	return fmt.Sprintf("%s %d %d", repeatMarker, r.GoBack, r.Mark)
}

func endingText(m model.MultiEnding) string {
	parts := []string{endingMarker}
	for _, r := range m.Repeats() {
		parts = append(parts, strconv.Itoa(r.GoBack), strconv.Itoa(r.Mark))
	}
	return strings.Join(parts, " ")
}

// parseMarker reads a marker written by repeatText or endingText. Markers of
// any other kind return ok == false.
func parseMarker(text string) (kind string, repeats []model.Repeat, ok bool, err error) {
	fields := strings.Fields(text)
	if len(fields) == 0 || (fields[0] != repeatMarker && fields[0] != endingMarker) {
		return "", nil, false, nil
	}
	kind = fields[0]
	nums := fields[1:]
	if len(nums) == 0 || len(nums)%2 != 0 || (kind == repeatMarker && len(nums) != 2) {
		return kind, nil, true, fmt.Errorf("%w: marker %q", model.ErrInvalidRepeat, text)
	}
	for i := 0; i < len(nums); i += 2 {
		goBack, err1 := strconv.Atoi(nums[i])
		mark, err2 := strconv.Atoi(nums[i+1])
		if err1 != nil || err2 != nil {
			return kind, nil, true, fmt.Errorf("%w: marker %q", model.ErrInvalidRepeat, text)
		}
		repeats = append(repeats, model.Repeat{GoBack: goBack, Mark: mark})
	}
	return kind, repeats, true, nil
}
