package repository

import (
	"resolvo/internal/db"
	"resolvo/internal/model"
)

type WorkspaceRepository struct{}

func NewWorkspaceRepository() *WorkspaceRepository {
	return &WorkspaceRepository{}
}

func (r *WorkspaceRepository) Add(ws model.Workspace) (model.Workspace, error) {
	if err := db.DB.Create(&ws).Error; err != nil {
		return model.Workspace{}, err
	}

	return ws, nil
}

func (r *WorkspaceRepository) GetAll() ([]model.Workspace, error) {
	var workspaces []model.Workspace
	return workspaces, db.DB.Preload("Mappings").Find(&workspaces).Error
}

func (r *WorkspaceRepository) GetByName(name string) (model.Workspace, error) {
	var ws model.Workspace
	return ws, db.DB.Preload("Mappings").Where("name = ?", name).First(&ws).Error
}

func (r *WorkspaceRepository) Delete(id uint) error {
	if err := db.DB.Where("workspace_id = ?", id).Delete(&model.Mapping{}).Error; err != nil {
		return err
	}

	return db.DB.Delete(&model.Workspace{}, id).Error
}
