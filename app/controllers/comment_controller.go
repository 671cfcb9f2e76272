package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"postboard/app/models"
	"postboard/app/repositories"
	"postboard/app/services"
)

const commentNotFound = "Comment not found"

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Create handles creating a new comment
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CommentInput
	if err := decodeBody(r, &in); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := cc.commentService.CreateComment(r.Context(), in)
	if err != nil {
		sendInternalError(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}

// Index handles listing comments, optionally only those of ?postId=
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	var postID *int
	if raw := r.URL.Query().Get("postId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			sendError(w, "Invalid postId filter", http.StatusBadRequest)
			return
		}
		postID = &id
	}

	comments, err := cc.commentService.ListComments(r.Context(), postID)
	if err != nil {
		sendInternalError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

// Show handles displaying a single comment
func (cc *CommentController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	comment, err := cc.commentService.GetComment(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, commentNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		sendInternalError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, comment)
}

// Update handles PUT with the same create-or-replace rule as posts
func (cc *CommentController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	var in models.CommentInput
	if err := decodeBody(r, &in); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	comment, created, err := cc.commentService.UpsertComment(r.Context(), id, in)
	if err != nil {
		sendInternalError(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	sendJSON(w, status, comment)
}

// Delete handles deleting a comment
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	err = cc.commentService.DeleteComment(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, commentNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		sendInternalError(w, r, err)
		return
	}
	sendNoContent(w)
}
