// Package snapshot exports generated room layouts as zstd-compressed JSON
// and reads them back.
package snapshot

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/lawnchairsociety/dungeonkit/internal/geom"
	"github.com/lawnchairsociety/dungeonkit/internal/room"
	"github.com/lawnchairsociety/dungeonkit/internal/world"
)

// Version is the layout format written by Write.
const Version = 1

// Kind identifies room layout files.
const Kind = "room_layout"

var ErrUnsupportedVersion = errors.New("unsupported layout version")

type Header struct {
	Version   int       `json:"version"`
	Kind      string    `json:"kind"`
	Seed      int64     `json:"seed"`
	CreatedAt time.Time `json:"created_at"`
}

type Layout struct {
	Header Header   `json:"header"`
	Room   RoomV1   `json:"room"`
	Items  []ItemV1 `json:"items"`
}

type RoomV1 struct {
	Origin        geom.Vec2 `json:"origin"`
	Width         float64   `json:"width"`
	Height        float64   `json:"height"`
	WallThickness float64   `json:"wall_thickness"`
	Walls         []WallV1  `json:"walls"`
}

type WallV1 struct {
	Name   string    `json:"name"`
	Bounds geom.Rect `json:"bounds"`
	Solid  bool      `json:"solid"`
}

type ItemV1 struct {
	Prefab   string     `json:"prefab"`
	Name     string     `json:"name,omitempty"`
	Position geom.Vec2  `json:"position"`
	Rotation float64    `json:"rotation"`
	Shape    string     `json:"shape,omitempty"`
	Bounds   *geom.Rect `json:"bounds,omitempty"`
}

// FromRoom captures a generated room and the items spawned in it.
func FromRoom(r *room.Room, wallThickness float64, items []*world.Node, seed int64) Layout {
	l := Layout{
		Header: Header{Version: Version, Kind: Kind, Seed: seed, CreatedAt: time.Now().UTC()},
		Room: RoomV1{
			Origin:        r.Root.Position,
			Width:         r.Floor.Scale.X,
			Height:        r.Floor.Scale.Y,
			WallThickness: wallThickness,
			Walls:         []WallV1{},
		},
		Items: make([]ItemV1, 0, len(items)),
	}
	for _, w := range r.Walls {
		if w == nil {
			continue
		}
		wall := WallV1{Name: w.Name, Bounds: geom.CenteredRect(w.Position, w.Scale)}
		wall.Solid = w.Collider != nil && !w.Collider.Trigger
		l.Room.Walls = append(l.Room.Walls, wall)
	}
	for _, n := range items {
		item := ItemV1{Prefab: n.PrefabID, Name: n.Name, Position: n.Position, Rotation: n.Rotation}
		if b, ok := n.Bounds(); ok {
			item.Shape = n.Collider.Shape.String()
			item.Bounds = &b
		}
		l.Items = append(l.Items, item)
	}
	return l
}

// Write stores l at path as a JSON header line followed by the JSON layout,
// all inside one zstd stream.
func Write(path string, l Layout) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(enc)
	hb, err := json.Marshal(l.Header)
	if err != nil {
		enc.Close()
		return fmt.Errorf("json encode header: %w", err)
	}
	bw.Write(hb)
	bw.WriteByte('\n')
	if err := json.NewEncoder(bw).Encode(&l); err != nil {
		enc.Close()
		return fmt.Errorf("json encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return f.Close()
}

// ReadHeader returns only the header line of a layout file.
func ReadHeader(path string) (Header, error) {
	var h Header
	f, err := os.Open(path)
	if err != nil {
		return h, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return h, err
	}
	defer dec.Close()

	line, err := bufio.NewReader(dec).ReadBytes('\n')
	if err != nil {
		return h, fmt.Errorf("read header: %w", err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, fmt.Errorf("json decode header: %w", err)
	}
	return h, nil
}

// Read loads a layout written by Write.
func Read(path string) (Layout, error) {
	var l Layout
	f, err := os.Open(path)
	if err != nil {
		return l, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return l, err
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return l, fmt.Errorf("read header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return l, fmt.Errorf("json decode header: %w", err)
	}
	if h.Version != Version || h.Kind != Kind {
		return l, fmt.Errorf("%w: %s v%d", ErrUnsupportedVersion, h.Kind, h.Version)
	}

	if err := json.NewDecoder(br).Decode(&l); err != nil {
		return l, fmt.Errorf("json decode: %w", err)
	}
	return l, nil
}
