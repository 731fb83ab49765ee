package services

import (
	"context"
	"log/slog"
	"mime/multipart"
	"strings"

	"spaceHub/internal/access"
	"spaceHub/internal/enums"
	"spaceHub/internal/errs"
	"spaceHub/internal/models"
	"spaceHub/internal/repositories"
)

type DocumentService struct {
	workspaceGate
	documentRepo       *repositories.DocumentRepository
	fileManagerService *FileManagerService
	activityService    *ActivityService
}

func NewDocumentService(
	documentRepo *repositories.DocumentRepository,
	workspaceRepo *repositories.WorkspaceRepository,
	authorizer access.Authorizer,
	fileManagerService *FileManagerService,
	activityService *ActivityService,
) *DocumentService {
	return &DocumentService{
		workspaceGate:      workspaceGate{workspaceRepo: workspaceRepo, authorizer: authorizer},
		documentRepo:       documentRepo,
		fileManagerService: fileManagerService,
		activityService:    activityService,
	}
}

func (ds *DocumentService) GetDocuments(ctx context.Context, workspaceID, actorID uint) ([]*models.DocumentResponse, []error) {
	if _, errors := ds.authorize(ctx, workspaceID, actorID, access.Options{}); len(errors) > 0 {
		return nil, errors
	}

	documents, err := ds.documentRepo.FindDocumentsByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, []error{err}
	}
	responses := make([]*models.DocumentResponse, 0, len(documents))
	for i := range documents {
		responses = append(responses, documents[i].ToDocumentResponse())
	}
	return responses, nil
}

// CreateDocument stores the uploaded file and its metadata. The name falls back to the
// uploaded file's name.
func (ds *DocumentService) CreateDocument(
	ctx context.Context,
	workspaceID, actorID uint,
	body *models.CreateDocumentRequest,
	header *multipart.FileHeader,
) (*models.DocumentResponse, []error) {
	if _, errors := ds.authorize(ctx, workspaceID, actorID, access.Options{}); len(errors) > 0 {
		return nil, errors
	}
	if header == nil {
		return nil, []error{errs.ErrNoFileUploaded}
	}

	name := strings.TrimSpace(body.Name)
	if name == "" {
		name = header.Filename
	}
	if name == "" {
		return nil, []error{errs.ErrDocumentName}
	}

	file, err := ds.fileManagerService.UploadDocumentFile(ctx, header)
	if err != nil {
		return nil, []error{err}
	}

	created, err := ds.documentRepo.CreateDocument(ctx, &models.Document{
		Name:         name,
		Description:  body.Description,
		File:         *file,
		WorkspaceID:  workspaceID,
		UploadedByID: actorID,
		Tags:         body.Tags,
		IsPublic:     body.IsPublic,
	})
	if err != nil {
		if delErr := ds.fileManagerService.DeleteDocumentFile(ctx, file.Key); delErr != nil {
			slog.WarnContext(ctx, "failed to delete orphaned file", "key", file.Key, "error", delErr)
		}
		return nil, []error{err}
	}

	ds.activityService.Record(ctx, &models.Activity{
		WorkspaceID: workspaceID,
		Type:        enums.ACTIVITY_DOCUMENT_CREATED,
		UserID:      actorID,
		TargetID:    &created.ID,
		TargetModel: enums.TARGET_DOCUMENT,
		Metadata:    models.Metadata{"name": created.Name},
	})
	return created.ToDocumentResponse(), nil
}

// GetDocument lets non-members of a private workspace read documents flagged public.
func (ds *DocumentService) GetDocument(ctx context.Context, documentID, actorID uint) (*models.DocumentResponse, []error) {
	document, err := ds.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, []error{err}
	}
	if _, errors := ds.authorize(ctx, document.WorkspaceID, actorID, access.Options{Public: document.IsPublic}); len(errors) > 0 {
		return nil, errors
	}
	return document.ToDocumentResponse(), nil
}

func (ds *DocumentService) DeleteDocument(ctx context.Context, documentID, actorID uint) []error {
	document, err := ds.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return []error{err}
	}
	if _, errors := ds.authorize(ctx, document.WorkspaceID, actorID, access.Options{RequireAdmin: true}); len(errors) > 0 {
		return errors
	}

	if err := ds.documentRepo.DeleteDocument(ctx, document.ID); err != nil {
		return []error{err}
	}
	if err := ds.fileManagerService.DeleteDocumentFile(ctx, document.File.Key); err != nil {
		slog.WarnContext(ctx, "failed to delete stored file", "key", document.File.Key, "error", err)
	}
	return nil
}
