package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"

	"github.com/moyoez/statusboard/api/middlewares"
	"github.com/moyoez/statusboard/api/models"
	"github.com/moyoez/statusboard/chart"
	"github.com/moyoez/statusboard/notify"
	"github.com/moyoez/statusboard/sheet"
	"github.com/moyoez/statusboard/tool"
	"github.com/moyoez/statusboard/view"
)

// multipart framing on top of the file itself
const multipartOverhead = 1 << 20

type DashboardController struct {
	title string
}

func NewDashboardController(title string) *DashboardController {
	return &DashboardController{title: title}
}

type dashboardPage struct {
	Title       string
	Accept      string
	State       view.State
	ChartURL    string
	ChartWidth  int
	ChartHeight int
	WSEnabled   bool
}

// HandleIndex renders the dashboard page.
// GET /
func (ctrl *DashboardController) HandleIndex(c *gin.Context) {
	session := models.GetOrCreateSession(middlewares.SessionID(c))
	_, generation := session.Chart.Current()
	c.Header("Cache-Control", "no-cache")
	c.HTML(http.StatusOK, "index.html", dashboardPage{
		Title:       ctrl.title,
		Accept:      strings.Join(sheet.Extensions, ","),
		State:       session.View.Snapshot(),
		ChartURL:    "/chart?v=" + strconv.FormatUint(generation, 10),
		ChartWidth:  chart.SurfaceWidth,
		ChartHeight: chart.SurfaceHeight,
		WSEnabled:   notify.NotifyWSEnabled(),
	})
}

// HandleUpload decodes the uploaded spreadsheet into the session's dashboard.
// POST /upload (multipart field "file")
func (ctrl *DashboardController) HandleUpload(c *gin.Context) {
	session := models.GetOrCreateSession(middlewares.SessionID(c))
	limit := models.MaxUploadBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, tool.FastReturnTooLarge(limit))
			return
		}
		tool.DefaultLogger.Errorf("[Upload] Failed to read form file: %v", err)
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Missing file"))
		return
	}
	if fileHeader.Size > limit {
		c.JSON(http.StatusRequestEntityTooLarge, tool.FastReturnTooLarge(limit))
		return
	}
	if !sheet.Supported(fileHeader.Filename) {
		c.JSON(http.StatusUnsupportedMediaType, tool.FastReturnErrorWithData("Unsupported file type", map[string]any{"accepted": sheet.Extensions}))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		tool.DefaultLogger.Errorf("[Upload] Failed to open form file: %v", err)
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Failed to read file"))
		return
	}
	defer file.Close()

	tool.DefaultLogger.Infof("[Upload] Received %s (%d bytes) for session %s", fileHeader.Filename, fileHeader.Size, session.Id)
	_, before := session.Chart.Current()
	state, err := session.View.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		tool.DefaultLogger.Warnf("[Upload] %s: %v", fileHeader.Filename, err)
		switch {
		case errors.Is(err, tool.ErrTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, tool.FastReturnTooLarge(limit))
		case errors.Is(err, sheet.ErrDecode):
			c.JSON(http.StatusBadRequest, tool.FastReturnError(err.Error()))
		case errors.Is(err, context.Canceled):
			c.Status(http.StatusRequestTimeout)
		default:
			c.JSON(http.StatusInternalServerError, tool.FastReturnError(err.Error()))
		}
		return
	}

	if _, after := session.Chart.Current(); after != before {
		notify.Dispatch(session.Id, notify.CountsUpdated(state.FileName(), state.Counts(), after))
	}
	respond(c, state)
}

// HandleToggle shows or hides the table.
// POST /toggle
func (ctrl *DashboardController) HandleToggle(c *gin.Context) {
	session := models.GetOrCreateSession(middlewares.SessionID(c))
	state := session.View.Toggle()
	tool.DefaultLogger.Debugf("[Toggle] Session %s table visible=%v", session.Id, state.Visible())
	notify.Dispatch(session.Id, notify.VisibilityToggled(state.Visible()))
	respond(c, state)
}

// HandleSummary returns the session's state as JSON.
// GET /api/summary
func (ctrl *DashboardController) HandleSummary(c *gin.Context) {
	session := models.GetOrCreateSession(middlewares.SessionID(c))
	body, err := sonic.Marshal(tool.FastReturnSuccessWithData(session.View.Snapshot().Summary()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError(err.Error()))
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// respond answers scripted clients with the summary and plain form posts with a redirect.
func respond(c *gin.Context, state view.State) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(state.Summary()))
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json") ||
		c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
