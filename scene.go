package racenav

import (
	"bytes"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/viper"

	"github.com/tutumagi/racenav/bot"
	"github.com/tutumagi/racenav/engine/algo"
	e "github.com/tutumagi/racenav/errors"
	"github.com/tutumagi/racenav/track"
	"github.com/tutumagi/racenav/track/gates"
	"github.com/tutumagi/racenav/world"
)

// readTrack loads the track document from file, the builtin one when file
// is empty
func readTrack(file string) (algo.JSONMap, error) {
	v := viper.New()
	if file == "" {
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewBufferString(DefaultTrack)); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, e.NewError(fmt.Errorf("read track %s: %w", file, err), track.ErrCodeUnknown)
		}
	}

	doc, ok := v.Get("track").(map[string]interface{})
	if !ok {
		return nil, e.NewError(fmt.Errorf("no track section in %q", file), track.ErrCodeUnknown)
	}
	return algo.JSONMap(doc), nil
}

// LoadScene builds the waypoint graph from doc and puts its level geometry
// into w: walkable pads, solid boxes and the obstacles the gates watch.
func LoadScene(doc algo.JSONMap, w *world.World, factory *gates.Factory) (*track.Graph, error) {
	graph, err := track.Build(doc, factory.Build)
	if err != nil {
		return nil, err
	}

	if pads, err := doc.GetArray("pads"); err == nil {
		for i := range pads {
			def, err := pads.GetMap(i)
			if err != nil {
				return nil, e.NewError(fmt.Errorf("pad %d is not a map", i), track.ErrCodeUnknown)
			}
			top, err := track.Vec3(def, "top")
			if err != nil {
				return nil, e.NewError(fmt.Errorf("pad %d: %w", i, err), track.ErrCodeUnknown)
			}
			half, err := def.GetArray("half")
			if err != nil || len(half) != 2 {
				return nil, e.NewError(fmt.Errorf("pad %d needs half: [x, z]", i), track.ErrCodeUnknown)
			}
			hx, _ := half.GetFloat64(0)
			hz, _ := half.GetFloat64(1)
			w.AddPad(def.StringOr("id", fmt.Sprintf("pad%d", i)), top, hx, hz)
		}
	}

	if boxes, err := doc.GetArray("boxes"); err == nil {
		for i := range boxes {
			def, err := boxes.GetMap(i)
			if err != nil {
				return nil, e.NewError(fmt.Errorf("box %d is not a map", i), track.ErrCodeUnknown)
			}
			min, err := track.Vec3(def, "min")
			if err != nil {
				return nil, e.NewError(fmt.Errorf("box %d: %w", i, err), track.ErrCodeUnknown)
			}
			max, err := track.Vec3(def, "max")
			if err != nil {
				return nil, e.NewError(fmt.Errorf("box %d: %w", i, err), track.ErrCodeUnknown)
			}
			layer := bot.LayerMask(def.Float64Or("layer", float64(world.LayerObstacles)))
			w.AddBox(world.NewBox(def.StringOr("id", fmt.Sprintf("box%d", i)), min, max, layer))
		}
	}

	for _, ob := range factory.Obstacles() {
		layer, offset := world.LayerObstacles, mgl64.Vec3{}
		if ob.Walkable {
			// the anchor marks the top face
			layer, offset = world.LayerGround, mgl64.Vec3{0, -ob.Half[1], 0}
		}
		box := world.NewBox(ob.ID, ob.Half.Mul(-1), ob.Half, layer)
		box.Follow(ob.Anchor, offset)
		w.AddBox(box)
	}
	return graph, nil
}
