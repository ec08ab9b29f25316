package app

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/promptvault/internal/categories"
	"github.com/JaimeStill/promptvault/internal/prompts"
	"github.com/JaimeStill/promptvault/pkg/flash"
	"github.com/JaimeStill/promptvault/pkg/validation"
	"github.com/JaimeStill/promptvault/pkg/web"
)

// Flash texts shown after form submissions.
const (
	MsgPromptRequired  = "제목, 내용, 카테고리는 필수입니다."
	MsgPromptCreated   = "프롬프트가 성공적으로 등록되었습니다."
	MsgPromptNotFound  = "프롬프트를 찾을 수 없습니다."
	MsgPromptUpdated   = "프롬프트가 성공적으로 수정되었습니다."
	MsgPromptDeleted   = "프롬프트가 삭제되었습니다."
	MsgCategoryName    = "카테고리 이름은 필수입니다."
	MsgCategoryAdded   = "카테고리가 추가되었습니다."
	MsgCategoryExists  = "이미 존재하는 카테고리입니다."
	MsgCategoryInUse   = "이 카테고리를 사용하는 프롬프트가 있어 삭제할 수 없습니다."
	MsgCategoryDeleted = "카테고리가 삭제되었습니다."
	MsgCategoryMissing = "카테고리를 찾을 수 없습니다."
	msgServerError     = "요청을 처리하지 못했습니다."
)

type indexData struct {
	Prompts      []prompts.Prompt
	Categories   []categories.Category
	Search       string
	Category     string
	UpdatedToday int
}

type formData struct {
	Prompt     prompts.Prompt
	Categories []categories.Category
}

func (a *App) index(w http.ResponseWriter, r *http.Request) {
	filters := prompts.FiltersFromQuery(r.URL.Query())
	data := indexData{}
	if filters.Search != nil {
		data.Search = *filters.Search
	}
	if filters.Category != nil {
		data.Category = *filters.Category
	}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		data.Prompts, err = a.prompts.List(ctx, filters)
		return err
	})
	g.Go(func() (err error) {
		data.Categories, err = a.categories.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		data.UpdatedToday, err = a.prompts.UpdatedToday(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		a.serverError(w, r, err)
		return
	}

	a.render(w, r, http.StatusOK, "index", "", data)
}

func (a *App) newPrompt(w http.ResponseWriter, r *http.Request) {
	cats, err := a.categories.List(r.Context())
	if err != nil {
		a.serverError(w, r, err)
		return
	}

	a.render(w, r, http.StatusOK, "new", "", formData{Categories: cats})
}

func (a *App) createPrompt(w http.ResponseWriter, r *http.Request) {
	if !a.parseForm(w, r) {
		return
	}

	_, err := a.prompts.Create(r.Context(), prompts.CreateCommand{
		Title:       r.PostForm.Get("title"),
		Content:     r.PostForm.Get("content"),
		Category:    r.PostForm.Get("category"),
		Description: r.PostForm.Get("description"),
		Tags:        r.PostForm.Get("tags"),
	})
	switch {
	case errors.Is(err, prompts.ErrInvalid):
		a.redirect(w, r, "/prompt/new", flash.Error, MsgPromptRequired)
	case err != nil:
		a.serverError(w, r, err)
	default:
		a.redirect(w, r, "/", flash.Success, MsgPromptCreated)
	}
}

func (a *App) viewPrompt(w http.ResponseWriter, r *http.Request) {
	p, ok := a.findPrompt(w, r)
	if !ok {
		return
	}

	a.render(w, r, http.StatusOK, "view", p.Title, p)
}

func (a *App) editPrompt(w http.ResponseWriter, r *http.Request) {
	p, ok := a.findPrompt(w, r)
	if !ok {
		return
	}

	cats, err := a.categories.List(r.Context())
	if err != nil {
		a.serverError(w, r, err)
		return
	}

	a.render(w, r, http.StatusOK, "edit", "", formData{Prompt: *p, Categories: cats})
}

func (a *App) updatePrompt(w http.ResponseWriter, r *http.Request) {
	id, err := prompts.ParseID(r.PathValue("id"))
	if err != nil {
		a.redirect(w, r, "/", flash.Error, MsgPromptNotFound)
		return
	}
	if !a.parseForm(w, r) {
		return
	}

	_, err = a.prompts.Update(r.Context(), id, prompts.UpdateCommand{
		Title:       r.PostForm.Get("title"),
		Content:     r.PostForm.Get("content"),
		Category:    r.PostForm.Get("category"),
		Description: r.PostForm.Get("description"),
		Tags:        r.PostForm.Get("tags"),
	})
	switch {
	case errors.Is(err, prompts.ErrInvalid):
		a.redirect(w, r, fmt.Sprintf("/prompt/%d/edit", id), flash.Error, MsgPromptRequired)
	case errors.Is(err, prompts.ErrNotFound):
		a.redirect(w, r, "/", flash.Error, MsgPromptNotFound)
	case err != nil:
		a.serverError(w, r, err)
	default:
		a.redirect(w, r, fmt.Sprintf("/prompt/%d", id), flash.Success, MsgPromptUpdated)
	}
}

func (a *App) deletePrompt(w http.ResponseWriter, r *http.Request) {
	id, err := prompts.ParseID(r.PathValue("id"))
	if err != nil {
		a.redirect(w, r, "/", flash.Error, MsgPromptNotFound)
		return
	}

	err = a.prompts.Delete(r.Context(), id)
	switch {
	case errors.Is(err, prompts.ErrNotFound):
		a.redirect(w, r, "/", flash.Error, MsgPromptNotFound)
	case err != nil:
		a.serverError(w, r, err)
	default:
		a.redirect(w, r, "/", flash.Success, MsgPromptDeleted)
	}
}

func (a *App) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := a.categories.List(r.Context())
	if err != nil {
		a.serverError(w, r, err)
		return
	}

	a.render(w, r, http.StatusOK, "categories", "", cats)
}

func (a *App) createCategory(w http.ResponseWriter, r *http.Request) {
	if !a.parseForm(w, r) {
		return
	}

	_, err := a.categories.Create(r.Context(), categories.CreateCommand{
		Name:  r.PostForm.Get("name"),
		Color: r.PostForm.Get("color"),
	})
	switch {
	case errors.Is(err, categories.ErrInvalid) && validation.HasField(err, "name"):
		a.redirect(w, r, "/categories", flash.Error, MsgCategoryName)
	case errors.Is(err, categories.ErrInvalid):
		a.redirect(w, r, "/categories", flash.Error, err.Error())
	case errors.Is(err, categories.ErrDuplicate):
		a.redirect(w, r, "/categories", flash.Error, MsgCategoryExists)
	case err != nil:
		a.serverError(w, r, err)
	default:
		a.redirect(w, r, "/categories", flash.Success, MsgCategoryAdded)
	}
}

func (a *App) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := categories.ParseID(r.PathValue("id"))
	if err != nil {
		a.redirect(w, r, "/categories", flash.Error, MsgCategoryMissing)
		return
	}

	err = a.categories.Delete(r.Context(), id)
	switch {
	case errors.Is(err, categories.ErrInUse):
		a.redirect(w, r, "/categories", flash.Error, MsgCategoryInUse)
	case errors.Is(err, categories.ErrNotFound):
		a.redirect(w, r, "/categories", flash.Error, MsgCategoryMissing)
	case err != nil:
		a.serverError(w, r, err)
	default:
		a.redirect(w, r, "/categories", flash.Success, MsgCategoryDeleted)
	}
}

// findPrompt loads the prompt named by the id path value. On failure it has
// already answered, redirecting to the listing for unknown ids.
func (a *App) findPrompt(w http.ResponseWriter, r *http.Request) (*prompts.Prompt, bool) {
	id, err := prompts.ParseID(r.PathValue("id"))
	if err != nil {
		a.redirect(w, r, "/", flash.Error, MsgPromptNotFound)
		return nil, false
	}

	p, err := a.prompts.Find(r.Context(), id)
	switch {
	case errors.Is(err, prompts.ErrNotFound):
		a.redirect(w, r, "/", flash.Error, MsgPromptNotFound)
		return nil, false
	case err != nil:
		a.serverError(w, r, err)
		return nil, false
	}
	return p, true
}

func (a *App) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if a.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, a.cfg.MaxBodyBytes)
	}
	if err := r.ParseForm(); err != nil {
		a.logger.Warn("form rejected", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return false
	}
	return true
}

func (a *App) redirect(w http.ResponseWriter, r *http.Request, path, kind, text string) {
	a.flash.Add(w, r, kind, text)
	http.Redirect(w, r, a.views.BasePath()+path, http.StatusSeeOther)
}

func (a *App) render(w http.ResponseWriter, r *http.Request, status int, view, title string, data any) {
	vd := web.ViewData{
		Title:   title,
		Flashes: a.flash.Pop(w, r),
		Data:    data,
	}
	if err := a.views.Render(w, status, layout, view, vd); err != nil {
		a.logger.Error("render failed", "view", view, "error", err)
		http.Error(w, msgServerError, http.StatusInternalServerError)
	}
}

func (a *App) serverError(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, msgServerError, http.StatusInternalServerError)
}
