package beatmap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrNoHeader = errors.New("beatmap: missing osu file format header")

// FromPath decodes the .osu file at the given path.
func FromPath(path string) (*Beatmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("beatmap: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes a .osu beatmap from r. Only the sections the difficulty and
// performance engines consume are decoded; everything else is skipped.
func Parse(r io.Reader) (*Beatmap, error) {
	b := &Beatmap{
		AR:               -1,
		OD:               5,
		CS:               5,
		HP:               5,
		SliderMultiplier: 1.4,
		SliderTickRate:   1,
		FormatVersion:    14,
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	section := ""
	sawHeader := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if !sawHeader {
			if idx := strings.Index(line, "osu file format v"); idx >= 0 {
				if v, err := strconv.Atoi(strings.TrimSpace(line[idx+17:])); err == nil {
					b.FormatVersion = v
				}

				sawHeader = true

				continue
			}

			return nil, ErrNoHeader
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = line[1 : len(line)-1]
			continue
		}

		switch section {
		case "General":
			parseKeyValue(b, line)
		case "Metadata":
			parseMetadata(b, line)
		case "Difficulty":
			parseDifficulty(b, line)
		case "TimingPoints":
			parseTimingPoint(b, line)
		case "HitObjects":
			parseHitObject(b, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("beatmap: %w", err)
	}

	if b.AR < 0 { // old maps without an ApproachRate entry mirror OD
		b.AR = b.OD
	}

	sort.SliceStable(b.HitObjects, func(i, j int) bool {
		return b.HitObjects[i].StartTime < b.HitObjects[j].StartTime
	})

	return b, nil
}

func parseKeyValue(b *Beatmap, line string) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return
	}

	if strings.TrimSpace(key) == "Mode" {
		if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && v >= 0 && v <= 3 {
			b.Mode = Mode(v)
		}
	}
}

func parseMetadata(b *Beatmap, line string) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return
	}

	switch strings.TrimSpace(key) {
	case "Creator":
		b.Creator = strings.TrimSpace(value)
	case "BeatmapID":
		b.ID, _ = strconv.Atoi(strings.TrimSpace(value))
	}
}

func parseDifficulty(b *Beatmap, line string) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return
	}

	switch strings.TrimSpace(key) {
	case "ApproachRate":
		b.AR = v
	case "OverallDifficulty":
		b.OD = v
	case "CircleSize":
		b.CS = v
	case "HPDrainRate":
		b.HP = v
	case "SliderMultiplier":
		b.SliderMultiplier = v
	case "SliderTickRate":
		b.SliderTickRate = v
	}
}

func parseTimingPoint(b *Beatmap, line string) {
	parts := strings.Split(line, ",")
	if len(parts) < 2 {
		return
	}

	time, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	beatLen, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)

	if err1 != nil || err2 != nil {
		return
	}

	uninherited := true
	if len(parts) > 6 {
		uninherited = strings.TrimSpace(parts[6]) != "0"
	}

	if uninherited && beatLen > 0 {
		b.TimingPoints = append(b.TimingPoints, TimingPoint{Time: time, BeatLen: beatLen})
	} else if beatLen < 0 {
		b.DifficultyPoints = append(b.DifficultyPoints, DifficultyPoint{
			Time:           time,
			SliderVelocity: -100.0 / beatLen,
		})
	}
}

const (
	typeCircle   = 1 << 0
	typeSlider   = 1 << 1
	typeNewCombo = 1 << 2
	typeSpinner  = 1 << 3
	typeHold     = 1 << 7
)

func parseHitObject(b *Beatmap, line string) {
	parts := strings.Split(line, ",")
	if len(parts) < 4 {
		return
	}

	x, _ := strconv.ParseFloat(parts[0], 64)
	y, _ := strconv.ParseFloat(parts[1], 64)
	time, _ := strconv.ParseFloat(parts[2], 64)
	objType, _ := strconv.Atoi(parts[3])

	obj := HitObject{
		StartTime: time,
		EndTime:   time,
		Pos:       mgl64.Vec2{x, y},
		NewCombo:  objType&typeNewCombo != 0,
	}

	if len(parts) > 4 {
		obj.Sound, _ = strconv.Atoi(parts[4])
	}

	switch {
	case objType&typeCircle != 0:
		obj.Kind = KindCircle
	case objType&typeSlider != 0 && len(parts) > 7:
		obj.Kind = KindSlider
		obj.Slider = parseSliderData(obj.Pos, parts)
	case objType&typeSpinner != 0 && len(parts) > 5:
		obj.Kind = KindSpinner
		obj.EndTime, _ = strconv.ParseFloat(parts[5], 64)
	case objType&typeHold != 0 && len(parts) > 5:
		obj.Kind = KindHold

		endStr, _, _ := strings.Cut(parts[5], ":")
		obj.EndTime, _ = strconv.ParseFloat(endStr, 64)
	default:
		return
	}

	if obj.EndTime < obj.StartTime {
		obj.EndTime = obj.StartTime
	}

	b.HitObjects = append(b.HitObjects, obj)
}

func parseSliderData(head mgl64.Vec2, parts []string) *SliderData {
	curve := strings.Split(parts[5], "|")

	data := &SliderData{
		CurveType:     'L',
		ControlPoints: []mgl64.Vec2{head},
	}

	if len(curve[0]) > 0 {
		data.CurveType = curve[0][0]
	}

	for _, p := range curve[1:] {
		xs, ys, ok := strings.Cut(p, ":")
		if !ok {
			continue
		}

		px, _ := strconv.ParseFloat(xs, 64)
		py, _ := strconv.ParseFloat(ys, 64)

		data.ControlPoints = append(data.ControlPoints, mgl64.Vec2{px, py})
	}

	data.Repeats, _ = strconv.Atoi(parts[6])
	data.Repeats = max(1, data.Repeats)
	data.PixelLength, _ = strconv.ParseFloat(parts[7], 64)

	if len(parts) > 8 {
		for _, s := range strings.Split(parts[8], "|") {
			sound, err := strconv.Atoi(s)
			if err != nil {
				continue
			}

			data.EdgeSounds = append(data.EdgeSounds, sound)
		}
	}

	return data
}
