package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/SeakMengs/certgen/internal/model"
	"github.com/SeakMengs/certgen/internal/repository"
	"github.com/SeakMengs/certgen/internal/util"
	"github.com/SeakMengs/certgen/pkg/autocert"
	"github.com/gin-gonic/gin"
)

type StudentController struct {
	*baseController
}

const (
	ErrStudentNotFound   = "Student not found"
	ErrNoCSVFileUploaded = "No CSV file uploaded"
	maxStudentNameLength = 255
)

// Header spellings accepted by the bulk upload, per student field.
var studentHeaderAliases = map[string][]string{
	"name":       {"name", "Name"},
	"rollNumber": {"rollNumber", "Roll Number", "roll_number"},
	"email":      {"email", "Email"},
	"phone":      {"phone", "Phone"},
	"course":     {"course", "Course"},
	"year":       {"year", "Year"},
	"section":    {"section", "Section"},
	"category":   {"category", "Category"},
}

func firstAlias(row map[string]string, field string) string {
	for _, h := range studentHeaderAliases[field] {
		if v := strings.TrimSpace(row[h]); v != "" {
			return v
		}
	}
	return ""
}

// studentsFromCSV maps uploaded rows to students. Rows without a name are skipped.
// The second value lists problems with individual rows.
func studentsFromCSV(r io.Reader) ([]model.Student, []string, error) {
	records, err := autocert.ReadCSVFromReader(r)
	if err != nil {
		return nil, nil, err
	}

	rows, err := autocert.ParseCSVToMap(records)
	if err != nil {
		return nil, nil, err
	}

	students := make([]model.Student, 0, len(rows))
	rowErrors := []string{}
	for i, row := range rows {
		name := firstAlias(row, "name")
		if name == "" {
			continue
		}
		if len(name) > maxStudentNameLength {
			// header is line 1
			rowErrors = append(rowErrors, fmt.Sprintf("Error processing row %d: name is longer than %d characters", i+2, maxStudentNameLength))
			continue
		}

		students = append(students, model.Student{
			Name:       name,
			RollNumber: firstAlias(row, "rollNumber"),
			Email:      firstAlias(row, "email"),
			Phone:      firstAlias(row, "phone"),
			Course:     firstAlias(row, "course"),
			Year:       firstAlias(row, "year"),
			Section:    firstAlias(row, "section"),
			Category:   strings.ToLower(firstAlias(row, "category")),
		})
	}

	return students, rowErrors, nil
}

func toStudentResponses(students []model.Student) []model.StudentResponse {
	out := make([]model.StudentResponse, len(students))
	for i, s := range students {
		out[i] = s.ToResponse()
	}
	return out
}

func (sc StudentController) respondStudentError(ctx *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		util.ResponseFailed(ctx, http.StatusNotFound, ErrStudentNotFound, nil)
	case errors.Is(err, repository.ErrConflict):
		util.ResponseFailed(ctx, http.StatusBadRequest, "Student with this roll number already exists", nil)
	default:
		sc.app.Logger.Errorf("Failed to %s student: %v", action, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, fmt.Sprintf("Failed to %s student", action), err)
	}
}

func (sc StudentController) List(ctx *gin.Context) {
	user, err := sc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	students, err := sc.app.Repository.Student.ListByCollege(ctx, nil, user.College)
	if err != nil {
		sc.app.Logger.Errorf("Failed to list students: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get students", err)
		return
	}

	util.ResponseSuccess(ctx, http.StatusOK, toStudentResponses(students))
}

func (sc StudentController) Create(ctx *gin.Context) {
	type Request struct {
		Name       string `json:"name" form:"name" binding:"required,strNotEmpty,cmax=255"`
		RollNumber string `json:"rollNumber" form:"rollNumber" binding:"cmax=64"`
		Email      string `json:"email" form:"email"`
		Phone      string `json:"phone" form:"phone"`
		Course     string `json:"course" form:"course"`
		Year       string `json:"year" form:"year"`
		Section    string `json:"section" form:"section"`
		Category   string `json:"category" form:"category"`
	}
	var body Request

	user, err := sc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", err)
		return
	}

	student := model.Student{
		Name:       strings.TrimSpace(body.Name),
		RollNumber: strings.TrimSpace(body.RollNumber),
		Email:      strings.TrimSpace(body.Email),
		Phone:      strings.TrimSpace(body.Phone),
		Course:     strings.TrimSpace(body.Course),
		Year:       strings.TrimSpace(body.Year),
		Section:    strings.TrimSpace(body.Section),
		Category:   strings.ToLower(strings.TrimSpace(body.Category)),
		CollegeID:  user.College,
		AddedByID:  &user.UserID,
	}

	if err := sc.app.Repository.Student.Create(ctx, nil, &student); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			util.ResponseFailed(ctx, http.StatusBadRequest, fmt.Sprintf("Student with roll number %q already exists", student.RollNumber), nil)
			return
		}
		sc.respondStudentError(ctx, "create", err)
		return
	}

	util.ResponseSuccess(ctx, http.StatusCreated, student.ToResponse())
}

// Update applies a partial update. The college of a student never changes.
func (sc StudentController) Update(ctx *gin.Context) {
	type Request struct {
		Name       *string `json:"name"`
		RollNumber *string `json:"rollNumber"`
		Email      *string `json:"email"`
		Phone      *string `json:"phone"`
		Course     *string `json:"course"`
		Year       *string `json:"year"`
		Section    *string `json:"section"`
		Category   *string `json:"category"`
	}
	var body Request

	user, err := sc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", err)
		return
	}

	if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", []util.ApiError{{Field: "name", Message: "name must not be empty"}})
		return
	}
	if body.Category != nil {
		lowered := strings.ToLower(strings.TrimSpace(*body.Category))
		if lowered == "" {
			lowered = model.DefaultStudentCategory
		}
		body.Category = &lowered
	}

	student, err := sc.app.Repository.Student.Update(ctx, nil, user.College, ctx.Param("id"), repository.StudentUpdate{
		Name:       body.Name,
		RollNumber: body.RollNumber,
		Email:      body.Email,
		Phone:      body.Phone,
		Course:     body.Course,
		Year:       body.Year,
		Section:    body.Section,
		Category:   body.Category,
	})
	if err != nil {
		sc.respondStudentError(ctx, "update", err)
		return
	}

	util.ResponseSuccess(ctx, http.StatusOK, student.ToResponse())
}

func (sc StudentController) Delete(ctx *gin.Context) {
	user, err := sc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	if err := sc.app.Repository.Student.Delete(ctx, nil, user.College, ctx.Param("id")); err != nil {
		sc.respondStudentError(ctx, "delete", err)
		return
	}

	util.ResponseSuccess(ctx, http.StatusOK, gin.H{"message": "Student deleted successfully"})
}

// BulkUpload imports a CSV of students. Duplicate roll numbers are skipped and
// reported. The uploaded file is always removed.
func (sc StudentController) BulkUpload(ctx *gin.Context) {
	user, err := sc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	file, err := ctx.FormFile("csvFile")
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, ErrNoCSVFileUploaded, nil)
		return
	}

	if maxSize := int64(sc.app.Config.Upload.MAX_SIZE_MB) << 20; maxSize > 0 && file.Size > maxSize {
		util.ResponseFailed(ctx, http.StatusBadRequest, fmt.Sprintf("CSV file must be at most %d MB", sc.app.Config.Upload.MAX_SIZE_MB), nil)
		return
	}

	uploadPath, err := util.SaveUploadPath(sc.app.Config.Upload.DIR, file.Filename)
	if err != nil {
		sc.app.Logger.Errorf("Failed to prepare upload path: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to save CSV file", err)
		return
	}
	if err := ctx.SaveUploadedFile(file, uploadPath); err != nil {
		os.Remove(uploadPath)
		sc.app.Logger.Errorf("Failed to save uploaded CSV: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to save CSV file", err)
		return
	}
	defer os.Remove(uploadPath)

	src, err := os.Open(uploadPath)
	if err != nil {
		sc.app.Logger.Errorf("Failed to open uploaded CSV: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to read CSV file", err)
		return
	}
	defer src.Close()

	students, rowErrors, err := studentsFromCSV(src)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid CSV file", err)
		return
	}

	for i := range students {
		students[i].AddedByID = &user.UserID
	}

	result, err := sc.app.Repository.Student.BulkCreate(ctx, nil, user.College, students)
	if err != nil {
		sc.app.Logger.Errorf("Failed to bulk create students: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to add students", err)
		return
	}
	sc.app.Metrics.StudentsImported(result.Inserted)

	response := gin.H{
		"message": fmt.Sprintf("Successfully added %d students", result.Inserted),
		"count":   result.Inserted,
		"total":   len(students),
		"errors":  rowErrors,
	}
	if len(result.Duplicates) > 0 {
		response["duplicates"] = gin.H{
			"count":       len(result.Duplicates),
			"rollNumbers": result.Duplicates,
		}
		response["message"] = fmt.Sprintf("%s. %d students were skipped due to duplicate roll numbers.", response["message"], len(result.Duplicates))
	}

	util.ResponseSuccess(ctx, http.StatusOK, response)
}

func (sc StudentController) Template(ctx *gin.Context) {
	ctx.Header("Content-Disposition", "attachment; filename="+autocert.StudentTemplateFileName)
	ctx.Data(http.StatusOK, "text/csv", []byte(autocert.StudentTemplateCSV))
}
