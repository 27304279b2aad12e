package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/beacon/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// ShowHome renders the public home page: hero carousel, upcoming events
// and the latest published posts.
func (a *API) ShowHome(c *gin.Context) {
	slides, err := a.carousels.List(true)
	if err != nil {
		slides = nil
	}

	events, err := a.events.List(service.EventFilter{ActiveOnly: true})
	if err != nil {
		events = nil
	}
	if len(events) > 3 {
		events = events[:3]
	}

	posts, err := a.blogs.ListPublished()
	if err != nil {
		posts = nil
	}
	if len(posts) > 3 {
		posts = posts[:3]
	}

	a.renderPublic(c, http.StatusOK, "home.html", gin.H{
		"title":  "Beacon - Lighting the Way Together",
		"slides": slides,
		"events": events,
		"posts":  posts,
	})
}

// ShowAbout renders the about page with the active team members.
func (a *API) ShowAbout(c *gin.Context) {
	members, err := a.team.List(true)
	if err != nil {
		members = nil
	}

	a.renderPublic(c, http.StatusOK, "about.html", gin.H{
		"title":   "About Us - Beacon",
		"members": members,
	})
}

// ShowEvents renders the public events page, optionally filtered by category.
func (a *API) ShowEvents(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))

	events, err := a.events.List(service.EventFilter{
		Category:   category,
		ActiveOnly: true,
	})
	if err != nil {
		a.renderPublic(c, http.StatusInternalServerError, "events_public.html", gin.H{
			"title": "Events - Beacon",
			"error": "Failed to load events",
		})
		return
	}

	a.renderPublic(c, http.StatusOK, "events_public.html", gin.H{
		"title":    "Events - Beacon",
		"events":   events,
		"category": category,
	})
}

// ShowBlog renders the public blog index with published posts only.
func (a *API) ShowBlog(c *gin.Context) {
	posts, err := a.blogs.ListPublished()
	if err != nil {
		a.renderPublic(c, http.StatusInternalServerError, "blog_public.html", gin.H{
			"title": "Blog - Beacon",
			"error": "Failed to load posts",
		})
		return
	}

	a.renderPublic(c, http.StatusOK, "blog_public.html", gin.H{
		"title": "Blog - Beacon",
		"posts": posts,
	})
}

// ShowBlogPost renders a single published post, markdown converted to
// sanitized HTML.
func (a *API) ShowBlogPost(c *gin.Context) {
	slug := c.Param("slug")

	post, err := a.blogs.GetBySlug(slug, true)
	if err != nil {
		if errors.Is(err, service.ErrBlogPostNotFound) {
			a.renderPublic(c, http.StatusNotFound, "not_found.html", gin.H{
				"title": "Post Not Found - Beacon",
			})
			return
		}
		a.renderPublic(c, http.StatusInternalServerError, "blog_public.html", gin.H{
			"title": "Blog - Beacon",
			"error": "Failed to load post",
		})
		return
	}

	a.renderPublic(c, http.StatusOK, "blog_post.html", gin.H{
		"title":   post.Title + " - Beacon",
		"post":    post,
		"content": renderMarkdown(post.Content),
	})
}

// ShowDonate renders the donate page. Payment details are static copy;
// no payment processing happens here.
func (a *API) ShowDonate(c *gin.Context) {
	a.renderPublic(c, http.StatusOK, "donate.html", gin.H{
		"title": "Donate - Beacon",
	})
}

// ShowVolunteer renders the volunteer page with the signup form.
func (a *API) ShowVolunteer(c *gin.Context) {
	a.renderPublic(c, http.StatusOK, "volunteer.html", gin.H{
		"title": "Volunteer - Beacon",
	})
}

// SubmitVolunteer 接收志愿者报名表单，成功与失败都回到原页面提示
func (a *API) SubmitVolunteer(c *gin.Context) {
	input := service.SignupInput{
		Name:            c.PostForm("name"),
		Email:           c.PostForm("email"),
		Phone:           c.PostForm("phone"),
		Interests:       strings.Join(c.PostFormArray("interests"), ", "),
		CommitmentLevel: c.PostForm("commitmentLevel"),
		Skills:          c.PostForm("skills"),
		Message:         c.PostForm("message"),
	}

	if _, err := a.volunteers.Submit(input); err != nil {
		status := http.StatusInternalServerError
		message := "Something went wrong. Please try again later."
		if errors.Is(err, service.ErrSignupInvalidInput) {
			status = http.StatusBadRequest
			message = "Please fill in all required fields."
		}
		a.renderPublic(c, status, "volunteer.html", gin.H{
			"title": "Volunteer - Beacon",
			"error": message,
			"form":  input,
		})
		return
	}

	a.renderPublic(c, http.StatusOK, "volunteer.html", gin.H{
		"title":   "Volunteer - Beacon",
		"success": "Thank you for signing up! We will be in touch soon.",
	})
}

// ShowContact renders the contact page with the site contact info.
func (a *API) ShowContact(c *gin.Context) {
	a.renderPublic(c, http.StatusOK, "contact.html", gin.H{
		"title": "Contact - Beacon",
	})
}

// SubmitContact 接收访客留言表单
func (a *API) SubmitContact(c *gin.Context) {
	input := service.SubmissionInput{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Subject: c.PostForm("subject"),
		Message: c.PostForm("message"),
	}

	if _, err := a.contacts.Submit(input); err != nil {
		status := http.StatusInternalServerError
		message := "Something went wrong. Please try again later."
		if errors.Is(err, service.ErrSubmissionInvalidInput) {
			status = http.StatusBadRequest
			message = "Please fill in all required fields."
		}
		a.renderPublic(c, status, "contact.html", gin.H{
			"title": "Contact - Beacon",
			"error": message,
			"form":  input,
		})
		return
	}

	a.renderPublic(c, http.StatusOK, "contact.html", gin.H{
		"title":   "Contact - Beacon",
		"success": "Your message has been sent. Thank you for reaching out!",
	})
}

func renderMarkdown(content string) template.HTML {
	var builder strings.Builder
	if err := markdownEngine.Convert([]byte(content), &builder); err != nil {
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(sanitizer.Sanitize(builder.String()))
}
