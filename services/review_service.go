package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"

	"hotel-booking-api/models"
	"hotel-booking-api/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReviewService enforces one-review-per-completed-booking and keeps
// Hotel.rating / Hotel.total_reviews in sync with the review rows.
type ReviewService struct {
	DB     *gorm.DB
	Images *ImageService
}

func NewReviewService(db *gorm.DB, images *ImageService) *ReviewService {
	return &ReviewService{DB: db, Images: images}
}

type CreateReviewInput struct {
	BookingID uint
	Rating    int
	Comment   string
	Images    []string // base64 payloads
}

type UpdateReviewInput struct {
	Rating  *int
	Comment *string
	Images  *[]string // replaces the stored set when present
}

type ReviewFilters struct {
	HotelID    uint
	UserID     uint
	Rating     int
	MinRating  int
	MaxRating  int
	WithImages bool
	Search     string
	SortBy     string
	SortOrder  string
	Page       int
	PerPage    int
}

type ReviewStatistics struct {
	TotalReviews       int64         `json:"total_reviews"`
	AverageRating      float64       `json:"average_rating"`
	RatingDistribution map[int]int64 `json:"rating_distribution"`
	PositiveReviews    int64         `json:"positive_reviews"`
	NegativeReviews    int64         `json:"negative_reviews"`
	NeutralReviews     int64         `json:"neutral_reviews"`
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// recomputeHotelRating persists rating = round(mean,1) and total_reviews
// for the hotel; rating resets to 0 when the last review goes.
func recomputeHotelRating(tx *gorm.DB, hotelID uint) error {
	var total int64
	if err := tx.Model(&models.Review{}).
		Where("hotel_id = ?", hotelID).Count(&total).Error; err != nil {
		return fmt.Errorf("failed to count reviews: %w", err)
	}

	rating := 0.0
	if total > 0 {
		var avg float64
		if err := tx.Model(&models.Review{}).
			Where("hotel_id = ?", hotelID).
			Select("AVG(rating)").Scan(&avg).Error; err != nil {
			return fmt.Errorf("failed to average ratings: %w", err)
		}
		rating = round1(avg)
	}

	return tx.Model(&models.Hotel{}).Where("id = ?", hotelID).
		Updates(map[string]interface{}{
			"rating":        rating,
			"total_reviews": total,
		}).Error
}

func (s *ReviewService) storeImages(payloads []string) (datatypes.JSON, error) {
	if len(payloads) == 0 {
		return nil, nil
	}
	refs := make([]string, 0, len(payloads))
	for _, p := range payloads {
		ref, err := s.Images.SaveBase64(p, "reviews")
		if err != nil {
			// roll back what we already wrote
			for _, r := range refs {
				_ = s.Images.Delete(r)
			}
			return nil, fmt.Errorf("failed to store review image: %w", err)
		}
		refs = append(refs, ref)
	}
	out, err := json.Marshal(refs)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(out), nil
}

func (s *ReviewService) deleteImages(raw datatypes.JSON) {
	if len(raw) == 0 {
		return
	}
	var refs []string
	if err := json.Unmarshal(raw, &refs); err != nil {
		log.Printf("warning: unreadable review image list: %v", err)
		return
	}
	for _, r := range refs {
		if err := s.Images.Delete(r); err != nil {
			log.Printf("warning: failed to delete review image %s: %v", r, err)
		}
	}
}

// Create adds a review for the caller's own completed booking and
// recomputes the hotel aggregate in the same transaction.
func (s *ReviewService) Create(caller models.Caller, in CreateReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	var booking models.Booking
	if err := s.DB.First(&booking, in.BookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("db error loading booking: %w", err)
	}
	if booking.UserID != caller.ID {
		return nil, ErrNotOwner
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, ErrBookingNotCompleted
	}

	var existing int64
	if err := s.DB.Model(&models.Review{}).
		Where("booking_id = ?", in.BookingID).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if existing > 0 {
		return nil, ErrReviewAlreadyExists
	}

	images, err := s.storeImages(in.Images)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:    caller.ID,
		HotelID:   booking.HotelID,
		BookingID: in.BookingID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Images:    images,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			if isDuplicateErr(err) {
				return ErrReviewAlreadyExists
			}
			return fmt.Errorf("failed to create review: %w", err)
		}
		return recomputeHotelRating(tx, booking.HotelID)
	})
	if err != nil {
		s.deleteImages(images)
		return nil, err
	}

	return s.Get(review.ID)
}

func (s *ReviewService) Get(id uint) (*models.Review, error) {
	var review models.Review
	if err := s.DB.Preload("User").Preload("Hotel").Preload("Booking").
		First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	return &review, nil
}

// Update edits the caller's own review; any rating change retriggers the
// hotel aggregate.
func (s *ReviewService) Update(caller models.Caller, id uint, in UpdateReviewInput) (*models.Review, error) {
	review, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if review.UserID != caller.ID {
		return nil, ErrUnauthorized
	}

	updates := map[string]interface{}{}
	ratingChanged := false

	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, fmt.Errorf("rating must be between 1 and 5")
		}
		if *in.Rating != review.Rating {
			ratingChanged = true
		}
		updates["rating"] = *in.Rating
	}
	if in.Comment != nil {
		updates["comment"] = *in.Comment
	}

	var oldImages, newImages datatypes.JSON
	if in.Images != nil {
		images, err := s.storeImages(*in.Images)
		if err != nil {
			return nil, err
		}
		oldImages = review.Images
		newImages = images
		updates["images"] = images
	}

	if len(updates) > 0 {
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Review{}).Where("id = ?", id).
				Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update review: %w", err)
			}
			if ratingChanged {
				return recomputeHotelRating(tx, review.HotelID)
			}
			return nil
		})
		if err != nil {
			s.deleteImages(newImages)
			return nil, err
		}
		// replacement committed, old files can go
		s.deleteImages(oldImages)
	}

	return s.Get(id)
}

// Delete removes a review (owner or admin), its image files, and
// recomputes the hotel aggregate.
func (s *ReviewService) Delete(caller models.Caller, id uint) error {
	review, err := s.Get(id)
	if err != nil {
		return err
	}
	if review.UserID != caller.ID && !caller.IsAdmin() {
		return ErrUnauthorized
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Review{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		return recomputeHotelRating(tx, review.HotelID)
	})
	if err != nil {
		return err
	}

	s.deleteImages(review.Images)
	return nil
}

// CanReview reports whether the caller may still review the booking:
// it must be theirs, completed, and unreviewed.
func (s *ReviewService) CanReview(caller models.Caller, bookingID uint) (bool, error) {
	var booking models.Booking
	err := s.DB.Where("id = ? AND user_id = ?", bookingID, caller.ID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrBookingNotFound
		}
		return false, fmt.Errorf("db error loading booking: %w", err)
	}

	if booking.Status != models.BookingStatusCompleted {
		return false, nil
	}

	var existing int64
	if err := s.DB.Model(&models.Review{}).
		Where("booking_id = ?", bookingID).Count(&existing).Error; err != nil {
		return false, fmt.Errorf("failed to check existing review: %w", err)
	}
	return existing == 0, nil
}

func (s *ReviewService) applyFilters(f ReviewFilters) *gorm.DB {
	query := s.DB.Model(&models.Review{})
	if f.HotelID != 0 {
		query = query.Where("hotel_id = ?", f.HotelID)
	}
	if f.UserID != 0 {
		query = query.Where("user_id = ?", f.UserID)
	}
	if f.Rating != 0 {
		query = query.Where("rating = ?", f.Rating)
	}
	if f.MinRating != 0 {
		query = query.Where("rating >= ?", f.MinRating)
	}
	if f.MaxRating != 0 {
		query = query.Where("rating <= ?", f.MaxRating)
	}
	if f.WithImages {
		query = query.Where("images IS NOT NULL")
	}
	if f.Search != "" {
		query = query.Where("comment LIKE ?", "%"+f.Search+"%")
	}
	return query
}

var reviewSortColumns = map[string]bool{
	"created_at": true,
	"rating":     true,
}

// List is the public review listing with the original's filter set.
func (s *ReviewService) List(f ReviewFilters) (utils.Paginated, error) {
	query := s.applyFilters(f).Preload("User").Preload("Hotel").Preload("Booking")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Paginated{}, fmt.Errorf("failed to count reviews: %w", err)
	}

	sortBy := f.SortBy
	if !reviewSortColumns[sortBy] {
		sortBy = "created_at"
	}
	order := "DESC"
	if f.SortOrder == "asc" {
		order = "ASC"
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = utils.DefaultPerPage
	}

	var reviews []models.Review
	if err := query.Order(sortBy + " " + order).
		Scopes(utils.Paginate(f.Page, f.PerPage)).
		Find(&reviews).Error; err != nil {
		return utils.Paginated{}, fmt.Errorf("failed to retrieve reviews: %w", err)
	}

	return utils.NewPaginated(reviews, f.Page, f.PerPage, total), nil
}

// Statistics aggregates over the filtered review set (hotel-scoped when
// f.HotelID is set, global otherwise).
func (s *ReviewService) Statistics(f ReviewFilters) (*ReviewStatistics, error) {
	stats := &ReviewStatistics{RatingDistribution: map[int]int64{}}

	type bucket struct {
		Rating int
		Count  int64
	}
	var buckets []bucket
	if err := s.applyFilters(f).
		Select("rating, COUNT(*) as count").
		Group("rating").
		Scan(&buckets).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	var sum int64
	for _, b := range buckets {
		stats.RatingDistribution[b.Rating] = b.Count
		stats.TotalReviews += b.Count
		sum += int64(b.Rating) * b.Count
		switch {
		case b.Rating >= 4:
			stats.PositiveReviews += b.Count
		case b.Rating <= 2:
			stats.NegativeReviews += b.Count
		default:
			stats.NeutralReviews += b.Count
		}
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = round1(float64(sum) / float64(stats.TotalReviews))
	}
	return stats, nil
}
