package services

import (
	"errors"
	"fmt"
	"strings"

	"hotel-booking-api/models"
	"hotel-booking-api/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

type UpdateProfileInput struct {
	Name     *string
	Phone    *string
	Address  *string
	Password *string
}

type AdminUpdateUserInput struct {
	Name            *string
	Email           *string
	Phone           *string
	Address         *string
	Password        *string
	Role            *string
	ManagedHotelIDs *[]uint
}

type UserFilters struct {
	Role   string
	Search string
	Page   int
	PerPage int
}

// Register creates a customer account. The role is always "user" here;
// staff accounts are created through the admin endpoints.
func (s *UserService) Register(in RegisterInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: string(hash),
		Role:     models.RoleUser,
		Phone:    in.Phone,
		Address:  in.Address,
	}

	if err := s.DB.Create(user).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and returns the user plus a signed token.
// Wrong email and wrong password are indistinguishable to the caller.
func (s *UserService) Login(email, password string) (*models.User, string, error) {
	var user models.User
	err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("db error loading user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return &user, token, nil
}

func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.Preload("ManagedHotels").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// UpdateProfile lets a user edit their own contact details and password.
// Email and role are not self-service.
func (s *UserService) UpdateProfile(userID uint, in UpdateProfileInput) (*models.User, error) {
	if _, err := s.Get(userID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = string(hash)
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&models.User{}).Where("id = ?", userID).
			Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}
	return s.Get(userID)
}

// AdminUpdate covers the full field set including role changes and the
// managed-hotel assignment for hotel managers.
func (s *UserService) AdminUpdate(caller models.Caller, id uint, in AdminUpdateUserInput) (*models.User, error) {
	if !caller.IsAdmin() {
		return nil, ErrUnauthorized
	}
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = string(hash)
	}
	if in.Role != nil {
		switch *in.Role {
		case models.RoleAdmin, models.RoleHotelManager, models.RoleUser:
			updates["role"] = *in.Role
		default:
			return nil, fmt.Errorf("unknown role %q", *in.Role)
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(user).Updates(updates).Error; err != nil {
				if isDuplicateErr(err) {
					return ErrEmailTaken
				}
				return fmt.Errorf("failed to update user: %w", err)
			}
		}
		if in.ManagedHotelIDs != nil {
			var hotels []models.Hotel
			if len(*in.ManagedHotelIDs) > 0 {
				if err := tx.Find(&hotels, *in.ManagedHotelIDs).Error; err != nil {
					return fmt.Errorf("failed to load hotels: %w", err)
				}
				if len(hotels) != len(*in.ManagedHotelIDs) {
					return ErrHotelNotFound
				}
			}
			if err := tx.Model(user).Association("ManagedHotels").Replace(hotels); err != nil {
				return fmt.Errorf("failed to assign hotels: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete soft-deletes a user; bookings and reviews stay for history.
// Admins cannot delete themselves.
func (s *UserService) Delete(caller models.Caller, id uint) error {
	if !caller.IsAdmin() {
		return ErrUnauthorized
	}
	if caller.ID == id {
		return ErrSelfDelete
	}
	result := s.DB.Delete(&models.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) List(caller models.Caller, f UserFilters) (utils.Paginated, error) {
	if !caller.IsAdmin() {
		return utils.Paginated{}, ErrUnauthorized
	}

	query := s.DB.Model(&models.User{})
	if f.Role != "" {
		query = query.Where("role = ?", f.Role)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Paginated{}, fmt.Errorf("failed to count users: %w", err)
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = utils.DefaultPerPage
	}

	var users []models.User
	if err := query.Order("created_at DESC").
		Scopes(utils.Paginate(f.Page, f.PerPage)).
		Find(&users).Error; err != nil {
		return utils.Paginated{}, fmt.Errorf("failed to retrieve users: %w", err)
	}

	return utils.NewPaginated(users, f.Page, f.PerPage, total), nil
}

// CallerFor assembles the authorization view of a user: identity, role,
// and the hotels they manage.
func (s *UserService) CallerFor(userID uint) (models.Caller, error) {
	user, err := s.Get(userID)
	if err != nil {
		return models.Caller{}, err
	}
	caller := models.Caller{ID: user.ID, Role: user.Role}
	for _, h := range user.ManagedHotels {
		caller.ManagedHotelIDs = append(caller.ManagedHotelIDs, h.ID)
	}
	return caller, nil
}
