package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"sort"
	"time"

	"hospital-admin/internal/delivery/dto"
	"hospital-admin/internal/delivery/http/middleware"
	"hospital-admin/internal/domain/entity"
	"hospital-admin/internal/service"
	"hospital-admin/internal/usecase"

	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	doctorAddPath = "/doctors/doc-add"

	tabPersonal     = "personal"
	tabProfessional = "professional"
)

var pageFuncs = template.FuncMap{
	"dateValue": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.UTC().Format("2006-01-02")
	},
}

type doctorPage struct {
	Title           string
	Sidebar         entity.Sidebar
	Tab             string
	Form            *dto.DoctorFormResponse
	Notice          string
	NoticeError     bool
	Genders         []entity.Option
	Specializations []entity.Option
	Departments     []entity.Option
	Positions       []entity.Option
}

// DoctorPageHandler renders the server-side Add Doctor page
type DoctorPageHandler struct {
	registrationUsecase usecase.DoctorRegistrationUsecase
	tmpl                *template.Template
	log                 *logrus.Logger
}

func NewDoctorPageHandler(registrationUsecase usecase.DoctorRegistrationUsecase, log *logrus.Logger) (*DoctorPageHandler, error) {
	tmpl, err := template.New("pages").Funcs(pageFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &DoctorPageHandler{
		registrationUsecase: registrationUsecase,
		tmpl:                tmpl,
		log:                 log,
	}, nil
}

func (h *DoctorPageHandler) Show(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	form, err := h.registrationUsecase.GetForm(r.Context(), sessionID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, form, "", false)
}

// Submit applies every posted field, then saves when the save button was used
func (h *DoctorPageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, err)
		return
	}

	form, err := h.registrationUsecase.SetFields(r.Context(), sessionID, postedFields(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if r.PostFormValue("action") != "save" {
		h.render(w, r, http.StatusOK, form, "", false)
		return
	}

	if err := h.registrationUsecase.Save(r.Context(), sessionID); err != nil {
		h.renderError(w, r, err)
		return
	}

	form, err = h.registrationUsecase.GetForm(r.Context(), sessionID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, form, service.MsgDoctorAdded, false)
}

func (h *DoctorPageHandler) StagePhoto(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	file, err := readStagedFile(w, r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if file == nil {
		h.renderError(w, r, service.ErrNoFileSelected)
		return
	}

	form, err := h.registrationUsecase.StagePhoto(r.Context(), sessionID, file)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, form, "", false)
}

func (h *DoctorPageHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	if _, err := h.registrationUsecase.UploadPhoto(r.Context(), sessionID); err != nil {
		h.renderError(w, r, err)
		return
	}

	form, err := h.registrationUsecase.GetForm(r.Context(), sessionID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, form, service.MsgPhotoUploaded, false)
}

// RedirectHome sends the root path to the Add Doctor page
func (h *DoctorPageHandler) RedirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, doctorAddPath, http.StatusFound)
}

// renderError shows the page again with the error as a notice. The form is
// reloaded so the page reflects whatever state the failed action left.
func (h *DoctorPageHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	form, formErr := h.registrationUsecase.GetForm(r.Context(), sessionID)
	if formErr != nil {
		h.log.Warnf("Failed to load form: %+v", formErr)
		http.Error(w, service.UserMessage(err), formErrorStatus(err))
		return
	}
	h.render(w, r, formErrorStatus(err), form, service.UserMessage(err), true)
}

func (h *DoctorPageHandler) render(w http.ResponseWriter, r *http.Request, status int, form *dto.DoctorFormResponse, notice string, isError bool) {
	tab := r.FormValue("tab")
	if tab != tabProfessional {
		tab = tabPersonal
	}

	page := doctorPage{
		Title:           "Add Doctor",
		Sidebar:         entity.AppSidebar().ForPath(doctorAddPath),
		Tab:             tab,
		Form:            form,
		Notice:          notice,
		NoticeError:     isError,
		Genders:         entity.GenderOptions,
		Specializations: entity.SpecializationOptions,
		Departments:     entity.DepartmentOptions,
		Positions:       entity.PositionOptions,
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		h.log.Errorf("Failed to render page: %+v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// postedFields turns "section.key" form values into field updates. Keys are
// sorted so updates apply in a stable order.
func postedFields(r *http.Request) []dto.SetFieldRequest {
	var reqs []dto.SetFieldRequest
	for _, section := range []entity.Section{entity.SectionPersonal, entity.SectionProfessional} {
		keys := entity.FieldKeys(section)
		sort.Strings(keys)
		for _, key := range keys {
			name := string(section) + "." + key
			values, ok := r.PostForm[name]
			if !ok || len(values) == 0 {
				continue
			}
			reqs = append(reqs, dto.SetFieldRequest{
				Section: string(section),
				Key:     key,
				Value:   values[0],
			})
		}
	}
	return reqs
}
