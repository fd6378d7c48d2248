// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cms

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/danielhkuo/folio/capability"
	"github.com/danielhkuo/folio/i18n"
	"github.com/danielhkuo/folio/models"
	"github.com/danielhkuo/folio/templates"
)

// SectionView is a section ready for presentation: template data with
// defaults applied, translations resolved and capability data merged in.
type SectionView struct {
	ID              int64          `json:"id"`
	TemplateKey     string         `json:"template"`
	TemplateVersion int            `json:"template_version"`
	Slot            string         `json:"slot"`
	Position        int            `json:"position"`
	Data            map[string]any `json:"data"`
}

// PageView is a rendered page with its sections grouped by slot.
type PageView struct {
	ID     int64                    `json:"id"`
	Slug   string                   `json:"slug"`
	Title  string                   `json:"title"`
	Locale string                   `json:"locale"`
	Slots  map[string][]SectionView `json:"slots"`
}

// SectionError reports which section failed to render.
type SectionError struct {
	SectionID   int64
	TemplateKey string
	Err         error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("section %d (%s): %v", e.SectionID, e.TemplateKey, e.Err)
}

func (e *SectionError) Unwrap() error { return e.Err }

type Renderer struct {
	registry    *templates.Registry
	resolver    *capability.Resolver
	concurrency int
	logger      *slog.Logger
	tracer      trace.Tracer
}

type Option func(*Renderer)

// WithConcurrency bounds how many sections of one page resolve at once.
func WithConcurrency(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(r *Renderer) { r.tracer = tracer }
}

func NewRenderer(registry *templates.Registry, resolver *capability.Resolver, opts ...Option) *Renderer {
	r := &Renderer{
		registry:    registry,
		resolver:    resolver,
		concurrency: 4,
		logger:      slog.Default(),
		tracer:      otel.Tracer("github.com/danielhkuo/folio/cms"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the template registry the renderer reads from.
func (r *Renderer) Registry() *templates.Registry {
	return r.registry
}

func (r *Renderer) Resolver() *capability.Resolver {
	return r.resolver
}

// RenderSection composes the view of one section. Unknown templates fail
// with an error wrapping templates.ErrTemplateNotFound; capability
// failures are returned as produced by the resolver.
func (r *Renderer) RenderSection(ctx context.Context, section models.PageSection, ec capability.ExecutionContext) (SectionView, error) {
	def, err := r.registry.Get(section.TemplateKey)
	if err != nil {
		return SectionView{}, &SectionError{SectionID: section.ID, TemplateKey: section.TemplateKey, Err: err}
	}

	tag := ec.Locale
	if tag == language.Und {
		tag = i18n.Default()
	}
	data := def.ApplyDefaults(section.Data)
	data = localize(def.Fields, data, tag)

	if ds := def.DataSource; ds != nil {
		params := bindParams(ds, data)
		result, err := r.resolver.Resolve(ctx, ds.Capability, params, ec)
		if err != nil {
			return SectionView{}, &SectionError{SectionID: section.ID, TemplateKey: section.TemplateKey, Err: err}
		}
		data[ds.TargetField] = result
	}

	return SectionView{
		ID:              section.ID,
		TemplateKey:     def.Key,
		TemplateVersion: def.Version,
		Slot:            section.Slot,
		Position:        section.Position,
		Data:            data,
	}, nil
}

// RenderPage renders the page's active sections concurrently. Any section
// failure fails the whole page.
func (r *Renderer) RenderPage(ctx context.Context, page models.Page, sections []models.PageSection, ec capability.ExecutionContext) (view PageView, err error) {
	ctx, span := r.tracer.Start(ctx, "cms.render_page",
		trace.WithAttributes(
			attribute.String("page.slug", page.Slug),
			attribute.Bool("render.preview", ec.Preview),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tag := ec.Locale
	if tag == language.Und {
		tag = i18n.Default()
		ec.Locale = tag
	}

	active := make([]models.PageSection, 0, len(sections))
	for _, s := range sections {
		if s.Active {
			active = append(active, s)
		}
	}
	SortSections(active)

	views := make([]SectionView, len(active))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, s := range active {
		g.Go(func() error {
			v, err := r.RenderSection(gctx, s, ec)
			if err != nil {
				return err
			}
			views[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.logger.Error("page render failed", "page", page.Slug, "error", err)
		return PageView{}, err
	}

	slots := make(map[string][]SectionView)
	for _, v := range views {
		slots[v.Slot] = append(slots[v.Slot], v)
	}
	span.SetAttributes(attribute.Int("render.sections", len(views)))

	return PageView{
		ID:     page.ID,
		Slug:   page.Slug,
		Title:  page.Title.Resolve(tag),
		Locale: tag.String(),
		Slots:  slots,
	}, nil
}

// SortSections orders sections by slot, then position, then id.
func SortSections(sections []models.PageSection) {
	sort.SliceStable(sections, func(i, j int) bool {
		a, b := sections[i], sections[j]
		if a.Slot != b.Slot {
			return a.Slot < b.Slot
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.ID < b.ID
	})
}

// bindParams maps section field values onto capability parameters. Static
// params go first so section values override them; unset fields are left
// out so the capability's defaults apply.
func bindParams(ds *templates.DataSource, data map[string]any) map[string]any {
	params := make(map[string]any, len(ds.StaticParams)+len(ds.Params))
	for k, v := range ds.StaticParams {
		params[k] = v
	}
	for field, param := range ds.Params {
		if v, ok := data[field]; ok && v != nil {
			params[param] = v
		}
	}
	return params
}

// localize replaces translation maps on translatable fields with the text
// for tag, recursing into collection items.
func localize(fields []templates.Field, data map[string]any, tag language.Tag) map[string]any {
	for _, f := range fields {
		v, ok := data[f.Name]
		if !ok || v == nil {
			continue
		}
		switch {
		case f.Translatable:
			if text, ok := translations(v); ok {
				data[f.Name] = text.Resolve(tag)
			}
		case f.Type == templates.FieldCollection:
			items, ok := v.([]any)
			if !ok {
				continue
			}
			out := make([]any, len(items))
			for i, item := range items {
				if m, ok := item.(map[string]any); ok {
					cp := make(map[string]any, len(m))
					for k, val := range m {
						cp[k] = val
					}
					out[i] = localize(f.Fields, cp, tag)
				} else {
					out[i] = item
				}
			}
			data[f.Name] = out
		}
	}
	return data
}

func translations(v any) (models.LocalizedText, bool) {
	switch m := v.(type) {
	case map[string]string:
		return models.LocalizedText(m), true
	case map[string]any:
		out := make(models.LocalizedText, len(m))
		for k, val := range m {
			s, ok := val.(string)
			if !ok {
				return nil, false
			}
			out[k] = s
		}
		return out, true
	case models.LocalizedText:
		return m, true
	}
	return nil, false
}
