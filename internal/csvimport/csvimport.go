// Package csvimport разбирает выгрузку сотрудников в формате CSV.
//
// Заголовки распознаются по русским и английским синонимам без учёта регистра.
// Разделителем может быть запятая или точка с запятой (выгрузка Excel).
package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/org-structure-manager/internal/domain"
)

// Канонические имена колонок
const (
	ColumnName       = "name"
	ColumnSurname    = "surname"
	ColumnPosition   = "position"
	ColumnEmail      = "email"
	ColumnPhone      = "phone"
	ColumnSkills     = "skills"
	ColumnDepartment = "department"
	ColumnRating     = "rating"
)

var headerAliases = map[string]string{
	"name":                 ColumnName,
	"фио":                  ColumnName,
	"ф.и.о.":               ColumnName,
	"имя":                  ColumnName,
	"фамилия имя отчество": ColumnName,
	"surname":              ColumnSurname,
	"фамилия":              ColumnSurname,
	"position":             ColumnPosition,
	"должность":            ColumnPosition,
	"позиция":              ColumnPosition,
	"email":                ColumnEmail,
	"e-mail":               ColumnEmail,
	"почта":                ColumnEmail,
	"электронная почта":    ColumnEmail,
	"phone":                ColumnPhone,
	"телефон":              ColumnPhone,
	"тел":                  ColumnPhone,
	"тел.":                 ColumnPhone,
	"skills":               ColumnSkills,
	"навыки":               ColumnSkills,
	"компетенции":          ColumnSkills,
	"умения":               ColumnSkills,
	"department":           ColumnDepartment,
	"отдел":                ColumnDepartment,
	"департамент":          ColumnDepartment,
	"подразделение":        ColumnDepartment,
	"rating":               ColumnRating,
	"рейтинг":              ColumnRating,
}

var requiredColumns = []string{ColumnName, ColumnPosition, ColumnEmail}

// Row - одна проверенная строка выгрузки
type Row struct {
	Line       int
	Name       string `validate:"required"`
	Surname    string
	Position   string `validate:"required"`
	Email      string `validate:"required,email"`
	Phone      string
	Skills     []string
	Department string
	Rating     *int `validate:"omitempty,min=0,max=5"`
}

// NewEmployee переводит строку в данные для создания сотрудника без подразделения
func (r Row) NewEmployee() domain.NewEmployee {
	return domain.NewEmployee{
		Name:     r.Name,
		Surname:  r.Surname,
		Position: r.Position,
		Email:    r.Email,
		Phone:    r.Phone,
		Rating:   r.Rating,
		Skills:   r.Skills,
	}
}

// Result - результат разбора: корректные строки и ошибки по строкам
type Result struct {
	Rows   []Row
	Errors []string
}

var validate = validator.New()

// Parse читает CSV с заголовком. Ошибка возвращается только для файла целиком
// (пустой файл, битый CSV, нет обязательных колонок); ошибки отдельных строк
// попадают в Result.Errors в виде "row N: ...", где заголовок - строка 1.
func Parse(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", domain.ErrInvalidCSV, err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Result{}, fmt.Errorf("%w: empty file", domain.ErrInvalidCSV)
		}
		return Result{}, fmt.Errorf("%w: %v", domain.ErrInvalidCSV, err)
	}

	columns := mapHeader(header)
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return Result{}, fmt.Errorf("%w: missing required columns: %s",
			domain.ErrInvalidCSV, strings.Join(missing, ", "))
	}

	var result Result
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", domain.ErrInvalidCSV, err)
		}
		if blank(record) {
			continue
		}
		line, _ := reader.FieldPos(0)

		row, rowErrs := buildRow(record, columns)
		if len(rowErrs) > 0 {
			for _, e := range rowErrs {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", line, e))
			}
			continue
		}
		row.Line = line
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}

// ParseSkills делит строку навыков по запятой или точке с запятой
func ParseSkills(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

func buildRow(record []string, columns map[string]int) (Row, []string) {
	get := func(col string) string {
		idx, ok := columns[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	row := Row{
		Name:       get(ColumnName),
		Surname:    get(ColumnSurname),
		Position:   get(ColumnPosition),
		Email:      get(ColumnEmail),
		Phone:      get(ColumnPhone),
		Skills:     ParseSkills(get(ColumnSkills)),
		Department: get(ColumnDepartment),
	}

	if _, ok := columns[ColumnSurname]; !ok && row.Surname == "" {
		if first, rest, found := strings.Cut(row.Name, " "); found {
			row.Name, row.Surname = first, strings.TrimSpace(rest)
		}
	}

	var problems []string
	if raw := get(ColumnRating); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid rating %q", raw))
		} else {
			row.Rating = &rating
		}
	}

	if err := validate.Struct(row); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return row, append(problems, err.Error())
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}

	return row, problems
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return fmt.Sprintf("invalid email %q", fe.Value())
	case "min", "max":
		return fmt.Sprintf("%s must be between 0 and 5", field)
	default:
		return fmt.Sprintf("%s failed %s check", field, fe.Tag())
	}
}

func mapHeader(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := headerAliases[key]; ok {
			key = canonical
		}
		if _, seen := columns[key]; !seen {
			columns[key] = i
		}
	}
	return columns
}

func sniffDelimiter(data []byte) rune {
	first, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
