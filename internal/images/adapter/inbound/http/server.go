package http_handler

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/anthanhphan/icon-layout-configurator/internal/images/config"
	"github.com/anthanhphan/icon-layout-configurator/internal/images/domain"
	"github.com/anthanhphan/icon-layout-configurator/internal/images/port"
	"github.com/anthanhphan/icon-layout-configurator/internal/layout"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// uploadField is the multipart field carrying the image.
const uploadField = "image"

// Plain-text bodies returned to clients.
const (
	msgNoFile          = "No file uploaded."
	msgInvalidFilename = "Invalid filename."
	msgReadDirectory   = "Error reading directory"
	msgNotFound        = "Not Found"
	msgInternal        = "Internal Server Error"
)

type uploadResponse struct {
	Filename string `json:"filename"`
}

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	service port.ImageService
}

func NewServer(cfg *config.Config, service port.ImageService) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             int(cfg.Server.BodyLimit),
		UnescapePath:          true,
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	s := &Server{
		app:     app,
		cfg:     cfg,
		service: service,
	}

	// Routes
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.handleHealth)
	s.app.Get("/icons", s.handleIcons)
	s.app.Post("/upload", s.handleUpload)
	s.app.Get(domain.ImagesPath, s.handleList)
	s.app.Get(domain.ImagesPath+"/:filename", s.handleServe)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// sendError maps service errors to a status and a plain-text body.
func (s *Server) sendError(c *fiber.Ctx, err error) error {
	status, message := fiber.StatusInternalServerError, msgInternal
	switch {
	case errors.Is(err, port.ErrNoFile):
		status, message = fiber.StatusBadRequest, msgNoFile
	case errors.Is(err, port.ErrInvalidFilename):
		status, message = fiber.StatusBadRequest, msgInvalidFilename
	case errors.Is(err, port.ErrStorageRead):
		message = msgReadDirectory
	case errors.Is(err, port.ErrImageNotFound):
		status, message = fiber.StatusNotFound, msgNotFound
	}

	if status >= fiber.StatusInternalServerError {
		sdklogger.Errorw("Request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(status).SendString(message)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleIcons(c *fiber.Ctx) error {
	return c.JSON(layout.Icons())
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		return s.sendError(c, port.ErrNoFile)
	}

	src, err := fh.Open()
	if err != nil {
		return s.sendError(c, err)
	}
	defer src.Close()

	img, err := s.service.Upload(c.UserContext(), fh.Filename, src)
	if err != nil {
		return s.sendError(c, err)
	}

	return c.JSON(uploadResponse{Filename: img.Filename})
}

func (s *Server) handleList(c *fiber.Ctx) error {
	names, err := s.service.List(c.UserContext())
	if err != nil {
		return s.sendError(c, err)
	}
	return c.JSON(names)
}

func (s *Server) handleServe(c *fiber.Ctx) error {
	img, err := s.service.Serve(c.UserContext(), c.Params("filename"))
	if err != nil {
		return s.sendError(c, err)
	}

	// Opened directly: stored names may hold '?', '#' or '%', which a
	// URI-based file sender would parse as URL syntax.
	f, err := os.Open(img.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s.sendError(c, port.ErrImageNotFound)
		}
		return s.sendError(c, err)
	}

	// Content type comes from the file extension. fasthttp closes f once sent.
	c.Type(filepath.Ext(img.Filename))
	return c.SendStream(f, int(img.Size))
}
