package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/signaltower/pkg/cache"
	planio "github.com/matzehuels/signaltower/pkg/io"
	"github.com/matzehuels/signaltower/pkg/observability"
	"github.com/matzehuels/signaltower/pkg/relay"
	"github.com/matzehuels/signaltower/pkg/render/cityplot"
	"github.com/matzehuels/signaltower/pkg/render/nodelink"
	"github.com/matzehuels/signaltower/pkg/render/term"
)

// RenderWithCacheInfo renders every requested format of plan and reports
// whether all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, plan *planio.Plan, opts Options) (map[string][]byte, bool, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	if len(opts.Formats) == 0 {
		return artifacts, false, nil
	}

	var planData bytes.Buffer
	if err := planio.WriteJSON(plan, &planData); err != nil {
		return nil, false, fmt.Errorf("serialize plan for cache key: %w", err)
	}
	planHash := cache.Hash(planData.Bytes())

	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	rendered, err := Render(ctx, plan, missing, opts.Title)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, false, nil
}

// Render produces each format in formats from plan without caching.
func Render(ctx context.Context, plan *planio.Plan, formats []string, title string) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()

	out := make(map[string][]byte, len(formats))
	var err error
	for _, format := range formats {
		var data []byte
		data, err = renderFormat(ctx, plan, format, title)
		if err != nil {
			err = fmt.Errorf("%s: %w", format, err)
			break
		}
		out[format] = data
	}

	hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func renderFormat(ctx context.Context, plan *planio.Plan, format, title string) ([]byte, error) {
	switch format {
	case FormatText:
		return []byte(term.Render(plan.Grid, term.Options{Path: plan.Path})), nil

	case FormatJSON:
		var buf bytes.Buffer
		if err := planio.WriteJSON(plan, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatPNG, FormatSVG:
		return cityplot.Render(plan.Grid, plan.Path, cityplot.Options{Format: format, Title: title})

	case FormatDOT, FormatGraph:
		g, err := relay.NewRangeGraph(plan.Radius, plan.Towers)
		if err != nil {
			return nil, err
		}
		dot := nodelink.ToDOT(g, nodelink.Options{Path: plan.Path, Order: true})
		if format == FormatDOT {
			return []byte(dot), nil
		}
		return nodelink.RenderSVG(ctx, dot)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}
