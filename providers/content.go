// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package providers

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/language"

	"github.com/danielhkuo/folio/capability"
	"github.com/danielhkuo/folio/i18n"
	"github.com/danielhkuo/folio/models"
	"github.com/danielhkuo/folio/store"
)

func toInt64s(ids []int) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

func locale(ec capability.ExecutionContext) language.Tag {
	if ec.Locale == language.Und {
		return i18n.Default()
	}
	return ec.Locale
}

func (c *Content) technologies(ctx context.Context, params capability.Params, ec capability.ExecutionContext) (any, error) {
	var in struct {
		IDs []int `param:"ids"`
	}
	if err := capability.DecodeParams(params, &in); err != nil {
		return nil, err
	}
	techs, err := c.store.ListTechnologies(ctx, toInt64s(in.IDs))
	if err != nil {
		return nil, err
	}
	out := make([]TechnologyView, 0, len(techs))
	for _, t := range techs {
		out = append(out, technologyView(t))
	}
	return out, nil
}

func (c *Content) gallery(ctx context.Context, params capability.Params, ec capability.ExecutionContext) (any, error) {
	var in struct {
		IDs []int `param:"ids"`
	}
	if err := capability.DecodeParams(params, &in); err != nil {
		return nil, err
	}
	out := []ImageView{}
	if len(in.IDs) == 0 {
		return out, nil
	}
	images, err := c.store.ListImages(ctx, toInt64s(in.IDs))
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.Image, len(images))
	for _, img := range images {
		byID[img.ID] = img
	}
	tag := locale(ec)
	for _, id := range in.IDs {
		if img, ok := byID[int64(id)]; ok {
			out = append(out, imageView(img, tag))
		}
	}
	return out, nil
}

func (c *Content) visibleProjects(ctx context.Context, params capability.Params, ec capability.ExecutionContext) (any, error) {
	var in struct {
		Limit         int   `param:"limit"`
		FeaturedOnly  bool  `param:"featured_only"`
		TechnologyIDs []int `param:"technology_ids"`
	}
	if err := capability.DecodeParams(params, &in); err != nil {
		return nil, err
	}
	if in.Limit < 0 {
		return nil, fmt.Errorf("limit must not be negative, got %d", in.Limit)
	}
	projects, err := c.store.ListProjects(ctx, store.ProjectFilter{
		VisibleOnly:   !ec.Preview,
		FeaturedOnly:  in.FeaturedOnly,
		TechnologyIDs: toInt64s(in.TechnologyIDs),
		Limit:         in.Limit,
	})
	if err != nil {
		return nil, err
	}
	return c.projectViews(ctx, projects, locale(ec), false)
}

func (c *Content) projectBySlug(ctx context.Context, params capability.Params, ec capability.ExecutionContext) (any, error) {
	var in struct {
		Slug string `param:"slug"`
	}
	if err := capability.DecodeParams(params, &in); err != nil {
		return nil, err
	}
	projects, err := c.store.ListProjects(ctx, store.ProjectFilter{
		VisibleOnly: !ec.Preview,
		Slug:        in.Slug,
		Limit:       1,
	})
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("project %q: %w", in.Slug, store.ErrNotFound)
	}
	views, err := c.projectViews(ctx, projects, locale(ec), true)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// projectViews resolves covers and technologies with one query each.
func (c *Content) projectViews(ctx context.Context, projects []models.Project, tag language.Tag, withBody bool) ([]ProjectView, error) {
	var techIDs, imageIDs []int64
	for _, p := range projects {
		techIDs = append(techIDs, p.TechnologyIDs...)
		if p.CoverImageID != nil {
			imageIDs = append(imageIDs, *p.CoverImageID)
		}
	}

	techs := map[int64]models.Technology{}
	if len(techIDs) > 0 {
		list, err := c.store.ListTechnologies(ctx, techIDs)
		if err != nil {
			return nil, err
		}
		for _, t := range list {
			techs[t.ID] = t
		}
	}
	images := map[int64]models.Image{}
	if len(imageIDs) > 0 {
		list, err := c.store.ListImages(ctx, imageIDs)
		if err != nil {
			return nil, err
		}
		for _, img := range list {
			images[img.ID] = img
		}
	}

	out := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		v := ProjectView{
			ID:            p.ID,
			Slug:          p.Slug,
			Title:         p.Title.Resolve(tag),
			Summary:       p.Summary.Resolve(tag),
			URL:           p.URL,
			RepositoryURL: p.RepositoryURL,
			Featured:      p.Featured,
			Technologies:  []TechnologyView{},
		}
		if withBody {
			v.Body = p.Body.Resolve(tag)
		}
		if p.CoverImageID != nil {
			if img, ok := images[*p.CoverImageID]; ok {
				iv := imageView(img, tag)
				v.Cover = &iv
			}
		}
		for _, id := range p.TechnologyIDs {
			if t, ok := techs[id]; ok {
				v.Technologies = append(v.Technologies, technologyView(t))
			}
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Content) groupedSkills(ctx context.Context, params capability.Params, ec capability.ExecutionContext) (any, error) {
	var in struct {
		Category string `param:"category"`
	}
	if err := capability.DecodeParams(params, &in); err != nil {
		return nil, err
	}
	skills, err := c.store.ListSkills(ctx, store.SkillFilter{VisibleOnly: !ec.Preview, Category: in.Category})
	if err != nil {
		return nil, err
	}

	tag := locale(ec)
	groups := []SkillGroup{}
	index := map[string]int{}
	for _, sk := range skills {
		i, ok := index[sk.Category]
		if !ok {
			i = len(groups)
			index[sk.Category] = i
			groups = append(groups, SkillGroup{Category: sk.Category, Skills: []SkillView{}})
		}
		groups[i].Skills = append(groups[i].Skills, SkillView{ID: sk.ID, Name: sk.Name.Resolve(tag), Level: sk.Level})
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Category < groups[j].Category })
	return groups, nil
}

func (c *Content) completedCourses(ctx context.Context, params capability.Params, ec capability.ExecutionContext) (any, error) {
	var in struct {
		Limit int `param:"limit"`
	}
	if err := capability.DecodeParams(params, &in); err != nil {
		return nil, err
	}
	courses, err := c.store.ListCourses(ctx, store.CourseFilter{
		VisibleOnly:   !ec.Preview,
		CompletedOnly: true,
		Limit:         in.Limit,
	})
	if err != nil {
		return nil, err
	}
	tag := locale(ec)
	out := make([]CourseView, 0, len(courses))
	for _, co := range courses {
		out = append(out, courseView(co, tag))
	}
	return out, nil
}

func (c *Content) timeline(ctx context.Context, params capability.Params, ec capability.ExecutionContext) (any, error) {
	var in struct {
		Kind  string `param:"kind"`
		Limit int    `param:"limit"`
	}
	if err := capability.DecodeParams(params, &in); err != nil {
		return nil, err
	}
	switch in.Kind {
	case "", models.ExperienceWork, models.ExperienceEducation, models.ExperienceVolunteer:
	default:
		return nil, fmt.Errorf("unknown experience kind %q", in.Kind)
	}
	experiences, err := c.store.ListExperiences(ctx, store.ExperienceFilter{
		VisibleOnly: !ec.Preview,
		Kind:        in.Kind,
		Limit:       in.Limit,
	})
	if err != nil {
		return nil, err
	}
	tag := locale(ec)
	out := make([]ExperienceView, 0, len(experiences))
	for _, e := range experiences {
		out = append(out, experienceView(e, tag))
	}
	return out, nil
}

func (c *Content) initiatives(ctx context.Context, params capability.Params, ec capability.ExecutionContext) (any, error) {
	var in struct {
		Limit           int  `param:"limit"`
		IncludeArchived bool `param:"include_archived"`
	}
	if err := capability.DecodeParams(params, &in); err != nil {
		return nil, err
	}
	list, err := c.store.ListInitiatives(ctx, store.InitiativeFilter{
		VisibleOnly:     !ec.Preview,
		IncludeArchived: in.IncludeArchived,
		Limit:           in.Limit,
	})
	if err != nil {
		return nil, err
	}
	tag := locale(ec)
	out := make([]InitiativeView, 0, len(list))
	for _, item := range list {
		out = append(out, initiativeView(item, tag))
	}
	return out, nil
}

func (c *Content) contacts(ctx context.Context, params capability.Params, ec capability.ExecutionContext) (any, error) {
	list, err := c.store.ListContacts(ctx, store.ContactFilter{VisibleOnly: !ec.Preview})
	if err != nil {
		return nil, err
	}
	out := make([]ContactView, 0, len(list))
	for _, ch := range list {
		out = append(out, ContactView{Kind: ch.Kind, Label: ch.Label, Value: ch.Value, URL: ch.URL})
	}
	return out, nil
}

func (c *Content) settings(ctx context.Context, params capability.Params, ec capability.ExecutionContext) (any, error) {
	ws, err := c.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	tag := locale(ec)
	locales := []string(ws.Locales)
	if locales == nil {
		locales = []string{}
	}
	return SiteView{
		SiteName:        ws.SiteName,
		Tagline:         ws.Tagline.Resolve(tag),
		MetaDescription: ws.MetaDescription.Resolve(tag),
		HomePageSlug:    ws.HomePageSlug,
		Locale:          tag.String(),
		Locales:         locales,
	}, nil
}
