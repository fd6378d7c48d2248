// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"

	"github.com/danielhkuo/folio/models"
	"github.com/danielhkuo/folio/store"
)

// ContentHandler groups the admin CRUD resources of every content module.
type ContentHandler struct {
	Projects     *Resource[models.Project, *models.Project]
	Technologies *Resource[models.Technology, *models.Technology]
	Images       *Resource[models.Image, *models.Image]
	Skills       *Resource[models.Skill, *models.Skill]
	Courses      *Resource[models.Course, *models.Course]
	Experiences  *Resource[models.Experience, *models.Experience]
	Initiatives  *Resource[models.Initiative, *models.Initiative]
	Contacts     *Resource[models.ContactChannel, *models.ContactChannel]
	Pages        *Resource[models.Page, *models.Page]
}

func NewContentHandler(s *store.Store) *ContentHandler {
	return &ContentHandler{
		Projects: &Resource[models.Project, *models.Project]{
			name:   "project",
			list:   func(ctx context.Context) ([]models.Project, error) { return s.ListProjects(ctx, store.ProjectFilter{}) },
			get:    s.GetProject,
			create: s.CreateProject,
			update: s.UpdateProject,
			delete: s.DeleteProject,
			setID:  func(p *models.Project, id int64) { p.ID = id },
		},
		Technologies: &Resource[models.Technology, *models.Technology]{
			name:   "technology",
			list:   func(ctx context.Context) ([]models.Technology, error) { return s.ListTechnologies(ctx, nil) },
			get:    s.GetTechnology,
			create: s.CreateTechnology,
			update: s.UpdateTechnology,
			delete: s.DeleteTechnology,
			setID:  func(t *models.Technology, id int64) { t.ID = id },
		},
		Images: &Resource[models.Image, *models.Image]{
			name:   "image",
			list:   func(ctx context.Context) ([]models.Image, error) { return s.ListImages(ctx, nil) },
			get:    s.GetImage,
			create: s.CreateImage,
			update: s.UpdateImage,
			delete: s.DeleteImage,
			setID:  func(i *models.Image, id int64) { i.ID = id },
		},
		Skills: &Resource[models.Skill, *models.Skill]{
			name:   "skill",
			list:   func(ctx context.Context) ([]models.Skill, error) { return s.ListSkills(ctx, store.SkillFilter{}) },
			get:    s.GetSkill,
			create: s.CreateSkill,
			update: s.UpdateSkill,
			delete: s.DeleteSkill,
			setID:  func(sk *models.Skill, id int64) { sk.ID = id },
		},
		Courses: &Resource[models.Course, *models.Course]{
			name:   "course",
			list:   func(ctx context.Context) ([]models.Course, error) { return s.ListCourses(ctx, store.CourseFilter{}) },
			get:    s.GetCourse,
			create: s.CreateCourse,
			update: s.UpdateCourse,
			delete: s.DeleteCourse,
			setID:  func(c *models.Course, id int64) { c.ID = id },
		},
		Experiences: &Resource[models.Experience, *models.Experience]{
			name: "experience",
			list: func(ctx context.Context) ([]models.Experience, error) {
				return s.ListExperiences(ctx, store.ExperienceFilter{})
			},
			get:    s.GetExperience,
			create: s.CreateExperience,
			update: s.UpdateExperience,
			delete: s.DeleteExperience,
			setID:  func(e *models.Experience, id int64) { e.ID = id },
		},
		Initiatives: &Resource[models.Initiative, *models.Initiative]{
			name: "initiative",
			list: func(ctx context.Context) ([]models.Initiative, error) {
				return s.ListInitiatives(ctx, store.InitiativeFilter{IncludeArchived: true})
			},
			get:    s.GetInitiative,
			create: s.CreateInitiative,
			update: s.UpdateInitiative,
			delete: s.DeleteInitiative,
			setID:  func(in *models.Initiative, id int64) { in.ID = id },
		},
		Contacts: &Resource[models.ContactChannel, *models.ContactChannel]{
			name:   "contact",
			list:   func(ctx context.Context) ([]models.ContactChannel, error) { return s.ListContacts(ctx, store.ContactFilter{}) },
			get:    s.GetContact,
			create: s.CreateContact,
			update: s.UpdateContact,
			delete: s.DeleteContact,
			setID:  func(c *models.ContactChannel, id int64) { c.ID = id },
		},
		Pages: &Resource[models.Page, *models.Page]{
			name:   "page",
			list:   s.ListPages,
			get:    s.GetPage,
			create: s.CreatePage,
			update: s.UpdatePage,
			delete: s.DeletePage,
			setID:  func(p *models.Page, id int64) { p.ID = id },
		},
	}
}
