package handler

import (
	"bytes"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"lookup-service/internal/config"
	"lookup-service/internal/fileio"
	"lookup-service/internal/lookup/model"
	"lookup-service/internal/lookup/service"
	"lookup-service/internal/middleware"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Lookup возвращает http.HandlerFunc для
// r.Post("/lookup/{mode}", lookupHnd.Lookup(cfg, schema, logger)).
func Lookup(cfg config.Config, schema model.Schema, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := middleware.WithRequestID(r, logger)

		mode, ok := model.ParseMode(chi.URLParam(r, "mode"))
		if !ok {
			writeError(w, http.StatusBadRequest, codeBadRequest, "unknown mode "+strconv.Quote(chi.URLParam(r, "mode")))
			return
		}
		ms, _ := schema.For(mode)

		defer r.Body.Close()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "bad multipart form: "+err.Error())
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		format := r.FormValue("format")
		if format == "" {
			format = "xlsx"
		}
		if format != "xlsx" && format != "json" {
			writeError(w, http.StatusBadRequest, codeBadRequest, "unknown format "+strconv.Quote(format))
			return
		}

		// Опции: дефолты из конфига, форма может переопределить
		opt := cfg.Options()
		if s := r.FormValue("scope"); s != "" {
			sc, ok := model.ParseScope(s)
			if !ok {
				writeError(w, http.StatusBadRequest, codeBadRequest, "unknown scope "+strconv.Quote(s))
				return
			}
			opt.Scope = sc
		}
		opt.UnicodeNFC = toBool(r.FormValue("nfc"), opt.UnicodeNFC)
		opt.LocaleNumbers = toBool(r.FormValue("locale_numbers"), opt.LocaleNumbers)

		threshold := ms.Threshold
		if mode == model.ModeTolerance {
			t, ok := toThreshold(r.FormValue("threshold"), ms.Threshold)
			if !ok {
				writeError(w, http.StatusBadRequest, codeBadRequest, service.ErrThreshold.Error())
				return
			}
			threshold = t
		}

		ms.Primary.HeaderRow = atoi(r.FormValue("primary_header_row"), ms.Primary.HeaderRow)
		ms.Reference.HeaderRow = atoi(r.FormValue("reference_header_row"), ms.Reference.HeaderRow)

		var v service.Validation
		primary, err := readUpload(r, "primary", ms.Primary, &v)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
			return
		}
		reference, err := readUpload(r, "reference", ms.Reference, &v)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
			return
		}
		if !v.OK() {
			log.Warn().Strs("issues", v.Messages()).Str("mode", string(mode)).Msg("schema check failed")
			writeErrors(w, http.StatusUnprocessableEntity, codeSchema, v.Messages())
			return
		}

		res, err := service.Run(model.Request{
			Mode:      mode,
			Primary:   primary,
			Reference: reference,
			Threshold: threshold,
		}, ms, opt)
		if err != nil {
			writeRunError(w, log, err)
			return
		}

		rep := res.Report
		if len(rep.Warnings) > 0 {
			log.Warn().Strs("warnings", rep.Warnings).Str("mode", string(mode)).Msg("lookup warnings")
		}
		if rep.Coerced > 0 {
			log.Debug().Int("coerced", rep.Coerced).Strs("samples", rep.Samples).Msg("non-numeric values ignored")
		}

		if format == "json" {
			writeJSON(w, http.StatusOK, jsonResult{
				FileName: ms.Output.FileName,
				Report:   rep,
				Results:  res.Lookups,
			})
		} else {
			// книга целиком в буфер: при ошибке клиент не получит обрезанный файл
			var buf bytes.Buffer
			if err := fileio.WriteXLSX(&buf, ms.Output.Sheet, res.Table); err != nil {
				writeRunError(w, log, &service.UnhandledError{Op: "write xlsx", Err: err})
				return
			}
			h := w.Header()
			h.Set("Content-Type", xlsxMIME)
			h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": ms.Output.FileName}))
			h.Set("Content-Length", strconv.Itoa(buf.Len()))
			h.Set("Cache-Control", "no-store")
			h.Set("X-Lookup-Found", strconv.Itoa(rep.Found))
			h.Set("X-Lookup-Not-Found", strconv.Itoa(rep.NotFound))
			w.WriteHeader(http.StatusOK)
			if _, err := buf.WriteTo(w); err != nil {
				log.Error().Err(err).Msg("write xlsx")
				return
			}
		}

		log.Info().
			Str("mode", string(mode)).
			Str("scope", string(rep.Scope)).
			Int("rows", rep.Rows).
			Int("reference", rep.Reference).
			Int("found", rep.Found).
			Int("not_found", rep.NotFound).
			Int("coerced", rep.Coerced).
			Dur("elapsed", time.Since(start)).
			Msg("lookup done")
	}
}

type jsonResult struct {
	FileName string               `json:"fileName"`
	Report   model.Report         `json:"report"`
	Results  []model.LookupResult `json:"results"`
}

// readUpload читает файл из поля формы. Отсутствующий лист не ошибка
// запроса: он уходит в v, чтобы показать все проблемы схемы разом.
func readUpload(r *http.Request, field string, fs model.FileSchema, v *service.Validation) (model.Table, error) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return model.Table{}, errors.New("missing " + field + ": " + err.Error())
	}
	defer f.Close()

	t, err := fileio.ReadTable(f, hdr.Filename, fileio.Options{Sheet: fs.Sheet, HeaderRow: fs.HeaderRow})
	switch {
	case err == nil:
		return t, nil
	case errors.Is(err, fileio.ErrSheetNotFound):
		v.Add(service.MissingSheetError(fs, err))
		return model.Table{}, nil
	default:
		return model.Table{}, &service.UnhandledError{Op: "read " + fs.Label, Err: err}
	}
}

func writeRunError(w http.ResponseWriter, log zerolog.Logger, err error) {
	var (
		verr *service.ValidationError
		serr *service.SchemaError
	)
	switch {
	case errors.As(err, &verr):
		writeErrors(w, http.StatusUnprocessableEntity, codeSchema, service.Validation{Issues: verr.Issues}.Messages())
	case errors.As(err, &serr):
		writeError(w, http.StatusUnprocessableEntity, codeSchema, serr.Error())
	case errors.Is(err, service.ErrThreshold):
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("lookup failed")
		msg := err.Error()
		var uerr *service.UnhandledError
		if !errors.As(err, &uerr) {
			msg = "Lỗi: " + msg
		}
		writeError(w, http.StatusInternalServerError, codeInternal, msg)
	}
}
