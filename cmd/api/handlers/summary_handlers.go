package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tube-digest/cmd/api/dto"
	"tube-digest/cmd/api/services"
	"tube-digest/summarizer"
	"tube-digest/youtube"
)

// SummarizeHandler godoc
// @Summary      Summarize a YouTube video
// @Description  Fetches the caption transcript for the given video URL and generates an abstractive summary
// @Tags         summaries
// @Accept       json
// @Produce      json
// @Param        request  body  dto.SummarizeRequestDTO  true  "Video URL"
// @Success      200  {object}  dto.SummaryResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      422  {object}  dto.ErrorResponseDTO
// @Failure      502  {object}  dto.ErrorResponseDTO
// @Router       /summaries [post]
func SummarizeHandler(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.SummarizeRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "url is required"})
			return
		}

		resp, err := svc.Summarize(c.Request.Context(), req.URL)
		if err != nil {
			status, msg := errorStatus(err)
			c.JSON(status, dto.ErrorResponseDTO{Error: msg})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// DownloadSummaryHandler godoc
// @Summary      Download a summary as plain text
// @Description  Returns the generated summary as a text/plain attachment
// @Tags         summaries
// @Param        id   path   string  true  "Summary id from the summarize response"
// @Produce      plain
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /summaries/{id}/download [get]
func DownloadSummaryHandler(svc *services.SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		entry, ok := svc.Store().Get(id)
		if !ok {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "summary not found or expired"})
			return
		}

		filename := fmt.Sprintf("%s_summary.txt", entry.Title)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(entry.Summary))
	}
}

// errorStatus converts pipeline errors into the HTTP mapping. Each error
// category keeps a distinct human-readable message because the user
// guidance differs between them.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, youtube.ErrInvalidURL):
		return http.StatusBadRequest, "invalid YouTube URL: no video id found"
	case errors.Is(err, youtube.ErrTranscriptsDisabled):
		return http.StatusUnprocessableEntity, "captions are disabled for this video"
	case errors.Is(err, youtube.ErrNoTranscript):
		return http.StatusNotFound, "no captions available for this video in any requested language"
	case errors.Is(err, summarizer.ErrEmptyTranscript):
		return http.StatusUnprocessableEntity, "the transcript for this video is empty"
	case errors.Is(err, youtube.ErrTranscriptService):
		return http.StatusBadGateway, "the captions service failed; please try again later"
	case errors.Is(err, summarizer.ErrSummarization):
		return http.StatusBadGateway, "summary generation failed; please try again later"
	default:
		return http.StatusInternalServerError, "unexpected error"
	}
}
