package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"spaceHub/internal/errs"
	"spaceHub/internal/models"
	"spaceHub/internal/msgs"
	"spaceHub/internal/utils"
)

func (rh *RestHandler) GetDocuments(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	documents, getErrs := rh.documentService.GetDocuments(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx))
	if len(getErrs) > 0 {
		abortWithErrors(ctx, getErrs)
		return
	}
	respondOK(ctx, documents)
}

// CreateDocument accepts a multipart form with the upload in the "file" field.
func (rh *RestHandler) CreateDocument(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, rh.maxUploadBytes+1<<20)
	var body models.CreateDocumentRequest
	if err := ctx.ShouldBind(&body); err != nil {
		abortWithError(ctx, uploadError(err))
		return
	}
	header, err := ctx.FormFile("file")
	if err != nil {
		if uploadError(err) == errs.ErrFileTooLarge {
			abortWithError(ctx, errs.ErrFileTooLarge)
			return
		}
		abortWithError(ctx, errs.ErrNoFileUploaded)
		return
	}

	document, createErrs := rh.documentService.CreateDocument(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx), &body, header)
	if len(createErrs) > 0 {
		abortWithErrors(ctx, createErrs)
		return
	}
	respond(ctx, http.StatusCreated, msgs.MsgOperationSuccessful, document)
}

func uploadError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return errs.ErrFileTooLarge
	}
	return errs.ErrInvalidRequestBody
}

func (rh *RestHandler) GetDocument(ctx *gin.Context) {
	documentID, ok := pathID(ctx, "docId")
	if !ok {
		return
	}

	document, getErrs := rh.documentService.GetDocument(ctx.Request.Context(), documentID, utils.GetUserIdFromContext(ctx))
	if len(getErrs) > 0 {
		abortWithErrors(ctx, getErrs)
		return
	}
	respondOK(ctx, document)
}

func (rh *RestHandler) DeleteDocument(ctx *gin.Context) {
	documentID, ok := pathID(ctx, "docId")
	if !ok {
		return
	}

	if deleteErrs := rh.documentService.DeleteDocument(ctx.Request.Context(), documentID, utils.GetUserIdFromContext(ctx)); len(deleteErrs) > 0 {
		abortWithErrors(ctx, deleteErrs)
		return
	}
	respond(ctx, http.StatusOK, msgs.MsgDocumentDeleted, nil)
}
