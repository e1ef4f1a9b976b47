package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCategoryService_Create_GeneratesSlug(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo, zap.NewNop())

	repo.On("ExistsBySlug", mock.Anything, "home-garden", (*uuid.UUID)(nil)).Return(false, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Category")).Return(nil)

	resp, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "Home & Garden"})

	require.NoError(t, err)
	assert.Equal(t, "home-garden", resp.Slug)
	assert.Nil(t, resp.ParentID)
	repo.AssertExpectations(t)
}

func TestCategoryService_Create_DuplicateSlug(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo, zap.NewNop())

	repo.On("ExistsBySlug", mock.Anything, "books", (*uuid.UUID)(nil)).Return(true, nil)

	_, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "Books", Slug: "books"})

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCategoryService_Create_UnknownParent(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo, zap.NewNop())
	parentID := uuid.New()

	repo.On("FindByID", mock.Anything, parentID).Return(nil, shared.ErrNotFound)

	_, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "Lamps", ParentID: &parentID})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PARENT", domainErr.Code)
}

func TestCategoryService_Update_RejectsCycle(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo, zap.NewNop())

	root, err := catalog.NewCategory("Home", "", nil)
	require.NoError(t, err)
	child, err := catalog.NewCategory("Lighting", "", &root.ID)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, root.ID).Return(root, nil)
	repo.On("FindByID", mock.Anything, child.ID).Return(child, nil)
	repo.On("FindAll", mock.Anything).Return([]catalog.Category{*root, *child}, nil)

	_, err = svc.Update(context.Background(), root.ID, UpdateCategoryRequest{ParentID: &child.ID})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PARENT", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCategoryService_Update_RenameKeepsSlug(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo, zap.NewNop())
	category, err := catalog.NewCategory("Books", "books", nil)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	repo.On("ExistsBySlug", mock.Anything, "books", &category.ID).Return(false, nil)
	repo.On("Save", mock.Anything, category).Return(nil)

	resp, err := svc.Update(context.Background(), category.ID, UpdateCategoryRequest{Name: lo.ToPtr("Paper books")})

	require.NoError(t, err)
	assert.Equal(t, "Paper books", resp.Name)
	assert.Equal(t, "books", resp.Slug)
}

func TestCategoryService_Delete_InUse(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo, zap.NewNop())
	id := uuid.New()

	repo.On("Delete", mock.Anything, id).Return(shared.ErrInUse)

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, shared.ErrInUse)
}
