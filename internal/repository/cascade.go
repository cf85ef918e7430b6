package repository

import (
	"quiz_room_hub/internal/model"

	"gorm.io/gorm"
)

// The delete helpers below remove dependent rows before their parents so
// deletes behave the same whether or not the database enforces foreign keys.
// They must run inside a transaction.

func pluckIDs(tx *gorm.DB, m interface{}, column string, values []string) ([]string, error) {
	var ids []string
	if len(values) == 0 {
		return ids, nil
	}
	err := tx.Model(m).Where(column+" IN ?", values).Pluck("id", &ids).Error
	return ids, err
}

func deleteAnswersTx(tx *gorm.DB, answerIDs []string) error {
	if len(answerIDs) == 0 {
		return nil
	}
	if err := tx.Where("answer_id IN ?", answerIDs).Delete(&model.StudentAnswer{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", answerIDs).Delete(&model.Answer{}).Error
}

func deleteQuestionsTx(tx *gorm.DB, questionIDs []string) error {
	if len(questionIDs) == 0 {
		return nil
	}
	if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.StudentAnswer{}).Error; err != nil {
		return err
	}
	if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Answer{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", questionIDs).Delete(&model.Question{}).Error
}

func deleteQuizzesTx(tx *gorm.DB, quizIDs []string) error {
	if len(quizIDs) == 0 {
		return nil
	}
	questionIDs, err := pluckIDs(tx, &model.Question{}, "quiz_id", quizIDs)
	if err != nil {
		return err
	}
	if err := deleteQuestionsTx(tx, questionIDs); err != nil {
		return err
	}
	if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.StudentQuiz{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", quizIDs).Delete(&model.Quiz{}).Error
}

func deletePostsTx(tx *gorm.DB, postIDs []string) error {
	if len(postIDs) == 0 {
		return nil
	}
	if err := tx.Where("post_id IN ?", postIDs).Delete(&model.Comment{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", postIDs).Delete(&model.CoursePost{}).Error
}

func deleteClassroomsTx(tx *gorm.DB, classroomIDs []string) error {
	if len(classroomIDs) == 0 {
		return nil
	}
	if err := tx.Where("classroom_id IN ?", classroomIDs).Delete(&model.StudentClassroom{}).Error; err != nil {
		return err
	}

	postIDs, err := pluckIDs(tx, &model.CoursePost{}, "classroom_id", classroomIDs)
	if err != nil {
		return err
	}
	if err := deletePostsTx(tx, postIDs); err != nil {
		return err
	}

	quizIDs, err := pluckIDs(tx, &model.Quiz{}, "classroom_id", classroomIDs)
	if err != nil {
		return err
	}
	if err := deleteQuizzesTx(tx, quizIDs); err != nil {
		return err
	}

	return tx.Where("id IN ?", classroomIDs).Delete(&model.Classroom{}).Error
}

func deleteUserTx(tx *gorm.DB, userID uint) error {
	var teacherIDs []string
	if err := tx.Model(&model.TeacherProfile{}).Where("user_id = ?", userID).Pluck("id", &teacherIDs).Error; err != nil {
		return err
	}
	classroomIDs, err := pluckIDs(tx, &model.Classroom{}, "teacher_id", teacherIDs)
	if err != nil {
		return err
	}
	if err := deleteClassroomsTx(tx, classroomIDs); err != nil {
		return err
	}

	var studentIDs []string
	if err := tx.Model(&model.StudentProfile{}).Where("user_id = ?", userID).Pluck("id", &studentIDs).Error; err != nil {
		return err
	}
	if len(studentIDs) > 0 {
		for _, m := range []interface{}{&model.StudentClassroom{}, &model.StudentAnswer{}, &model.StudentQuiz{}} {
			if err := tx.Where("student_id IN ?", studentIDs).Delete(m).Error; err != nil {
				return err
			}
		}
	}

	if err := tx.Where("user_id = ?", userID).Delete(&model.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&model.TeacherProfile{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&model.StudentProfile{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.User{}, userID).Error
}
