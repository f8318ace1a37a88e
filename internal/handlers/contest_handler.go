package handlers

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tanvirhossain/contesthub/internal/models"
)

// ContestStore is what the contest routes need from the query layer.
type ContestStore interface {
	List(ctx context.Context, search string) ([]models.ContestSummary, error)
	Popular(ctx context.Context) ([]models.ContestSummary, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ContestDetail, error)
	ForCreator(ctx context.Context, contestID, creatorID primitive.ObjectID) (*models.CreatorContestView, error)
	ListAll(ctx context.Context, page, limit int64) ([]models.Contest, int64, error)
	Create(ctx context.Context, contest models.Contest) (*models.Contest, error)
}

// ImageUploader stores a contest image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
}

type ContestHandler struct {
	contests ContestStore
	images   ImageUploader
}

func NewContestHandler(contests ContestStore, images ImageUploader) *ContestHandler {
	return &ContestHandler{contests: contests, images: images}
}

func (h *ContestHandler) List(c *fiber.Ctx) error {
	contests, err := h.contests.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(contests)
}

func (h *ContestHandler) Popular(c *fiber.Ctx) error {
	contests, err := h.contests.Popular(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(contests)
}

func (h *ContestHandler) GetByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid contest ID format")
	}

	contest, err := h.contests.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(contest)
}

func (h *ContestHandler) ForCreator(c *fiber.Ctx) error {
	contestID, err := primitive.ObjectIDFromHex(c.Params("contestId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid contest ID format")
	}
	creatorID, err := primitive.ObjectIDFromHex(c.Params("creatorId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid creator ID format")
	}

	view, err := h.contests.ForCreator(c.UserContext(), contestID, creatorID)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

func (h *ContestHandler) ListAll(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	contests, total, err := h.contests.ListAll(c.UserContext(), int64(page), int64(limit))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"contests": contests, "count": total})
}

// Create inserts a pending contest for the authenticated creator. The
// body is multipart form data with an optional "image" file.
func (h *ContestHandler) Create(c *fiber.Ctx) error {
	creatorHex, _ := c.Locals("user_id").(string)
	creatorID, err := primitive.ObjectIDFromHex(creatorHex)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized Access")
	}

	contest := models.Contest{
		Title:       c.FormValue("title"),
		Type:        c.FormValue("type"),
		Description: c.FormValue("description"),
		Creator:     creatorID,
	}
	if contest.Title == "" || contest.Type == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Title and type are required")
	}

	deadline, err := time.Parse(time.RFC3339, c.FormValue("deadline"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid deadline, expected RFC3339")
	}
	contest.Deadline = deadline

	if v := c.FormValue("prizeMoney"); v != "" {
		contest.PrizeMoney, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid prize money")
		}
	}
	if v := c.FormValue("entryFee"); v != "" {
		contest.EntryFee, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid entry fee")
		}
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Failed to open image")
		}
		defer file.Close()

		url, err := h.images.Upload(c.UserContext(), fileHeader.Filename,
			fileHeader.Header.Get("Content-Type"), file, fileHeader.Size)
		if err != nil {
			return err
		}
		contest.Image = url
	}

	created, err := h.contests.Create(c.UserContext(), contest)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}
