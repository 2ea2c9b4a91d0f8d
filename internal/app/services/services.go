package services

// Services defined in this package:
// - AuthService: registration, login, logout and the device session slot
// - ApprovalService: the admin review queue for student accounts
// - DirectoryService: the normalized student roster
// - JobService: the job board
// - EventService: the event board and registrations
// - MessageService: the fixed batch-group message boards
