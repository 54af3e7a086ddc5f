// Package materials resolves the visual appearance of building elements
// from the style/material relationship graph of the parsed scene.
package materials

import (
	"github.com/golang/glog"

	"github.com/bimscene/ifc_tiler/internal/ifc"
	"github.com/bimscene/ifc_tiler/internal/tiler"
)

// A style resolved to a normalized color. Channels are in [0,1], alpha is
// derived from the source transparency.
type StyleRecord struct {
	ID   string
	RGBA [4]float64
}

// Maps style, material and styled item identifiers to resolved colors.
type StyleMap map[string][4]float64

// Resolves the raw style records of a scene into a StyleMap. Styles without
// RGB components are omitted, a missing or out of range transparency yields
// a fully opaque color. Material and styled item records that reference a
// resolved style are linked into the map under their own identifier, so
// lookups by any of the three identifier kinds succeed.
func ResolveStyles(doc *ifc.SceneDocument, stats *tiler.ConversionStats) StyleMap {
	colors := make(StyleMap)

	for _, style := range doc.Styles {
		if style.RGB == nil {
			continue
		}
		rgba := [4]float64{
			clamp01(style.RGB[0]),
			clamp01(style.RGB[1]),
			clamp01(style.RGB[2]),
			1.0,
		}
		if style.Transparency != nil {
			rgba[3] = 1.0 - clamp01(*style.Transparency)
		}
		colors[style.ID] = rgba
		stats.ResolvedStyles++
	}

	// materials inherit the color of the first resolvable style of their
	// surface representation
	for _, material := range doc.Materials {
		for _, ref := range material.StyleRefs {
			if rgba, ok := colors[ref]; ok {
				colors[material.ID] = rgba
				break
			}
		}
	}

	// styled items are aliases for the styles they carry
	for _, item := range doc.StyledItems {
		for _, ref := range item.StyleRefs {
			if rgba, ok := colors[ref]; ok {
				colors[item.ID] = rgba
				break
			}
		}
	}

	glog.Infof("resolved %d material colors", stats.ResolvedStyles)
	if stats.ResolvedStyles == 0 {
		glog.Warning("no material colors found in scene, elements will use the default color")
	}

	return colors
}

// Indexes the texture records of a scene by identifier.
func ExtractTextures(doc *ifc.SceneDocument) map[string]ifc.TextureRawRecord {
	textures := make(map[string]ifc.TextureRawRecord)
	for _, texture := range doc.Textures {
		if texture.Path == "" {
			continue
		}
		textures[texture.ID] = texture
	}

	glog.Infof("extracted %d texture references", len(textures))
	return textures
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
